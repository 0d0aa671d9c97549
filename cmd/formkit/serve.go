package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/formkit/modules/registration"
	"github.com/dmitrymomot/formkit/pkg/clientip"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/ratelimiter"
	"github.com/dmitrymomot/formkit/pkg/redis"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

type serveCmd struct {
	form formFlags
	addr string
}

func newServeCmd() *serveCmd {
	return &serveCmd{}
}

func (cmd *serveCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Run the registration web server",
		UsageText: "formkit serve [options]",
		Description: `Serves the form and the table of accepted submissions.
Settings come from the environment (HTTP_*, FORM_*, RATE_LIMIT_*, REDIS_*, APP_*);
flags win. Submissions are rate limited per client address, in memory or in
Redis when REDIS_URL is set.`,
		Flags: append(cmd.form.flags(), &cli.StringFlag{
			Name:        "addr",
			Usage:       "listen address",
			Destination: &cmd.addr,
		}),
		Action: cmd.run,
	})
	return app
}

func (cmd *serveCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cmd.form.apply(&cfg.Form)
	if cmd.addr != "" {
		cfg.HTTP.Addr = cmd.addr
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			i18n.LoggerExtractor(),
		),
	)

	rules, err := registration.LoadRuleSet(cfg.Form)
	if err != nil {
		return err
	}
	tr, err := registration.NewTranslator(ctx, cfg.Form, log)
	if err != nil {
		return err
	}

	opts := []registration.ServiceOption{registration.WithLogger(log)}
	if cfg.RateLimit.Enabled() {
		var store ratelimiter.Store
		if cfg.Redis.Enabled() {
			client, err := redis.Connect(ctx, cfg.Redis)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()
			store = ratelimiter.NewRedisStore(client)
			opts = append(opts, registration.WithHealthCheck("redis", redis.Healthcheck(client)))
		} else {
			mem := ratelimiter.NewMemoryStore()
			defer mem.Close()
			store = mem
		}
		bucket, err := ratelimiter.NewBucket(store, cfg.RateLimit)
		if err != nil {
			return err
		}
		opts = append(opts, registration.WithRateLimiter(bucket))
	}

	svc := registration.NewService(registration.NewFormContext(cfg.Form, rules, nil), tr, opts...)
	log.InfoContext(ctx, "starting",
		logger.RuleSet(rules.Name()),
		logger.Lang(tr.DefaultLanguage()),
	)
	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).
		Run(ctx, registration.Router(svc))
}
