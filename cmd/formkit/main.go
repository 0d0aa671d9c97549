package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/formkit/modules/registration"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/ratelimiter"
	"github.com/dmitrymomot/formkit/pkg/redis"
)

// Populated at build time via -ldflags.
var version = "dev"

// appConfig is read from the environment and an optional .env file.
type appConfig struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Name      string `env:"APP_NAME" envDefault:"formkit"`
	HTTP      httpserver.Config
	Form      registration.Config
	RateLimit ratelimiter.Config
	Redis     redis.Config
}

// formFlags are the rule set overrides shared by every command.
type formFlags struct {
	rulesFile string
	ruleSet   string
}

func (f *formFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "rules",
			Usage:       "YAML rule file (defaults to the built-in rule sets)",
			Destination: &f.rulesFile,
		},
		&cli.StringFlag{
			Name:        "set",
			Usage:       "rule set to use",
			Destination: &f.ruleSet,
		},
	}
}

func (f *formFlags) apply(cfg *registration.Config) {
	if f.rulesFile != "" {
		cfg.RulesFile = f.rulesFile
	}
	if f.ruleSet != "" {
		cfg.RuleSet = f.ruleSet
	}
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}

func newApp() *cli.Command {
	app := &cli.Command{
		Name:      "formkit",
		Usage:     "Serve and check rule-driven registration forms",
		UsageText: "formkit command [command options]",
		Version:   version,
	}
	app = newServeCmd().Register(app)
	app = newCheckCmd().Register(app)
	return app
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
