package registration

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
)

//go:embed translations/*.yaml
var translations embed.FS

// Config holds the registration module settings.
type Config struct {
	RuleSet          string `env:"FORM_RULE_SET" envDefault:"student"`
	RulesFile        string `env:"FORM_RULES_FILE"`
	MinAge           int    `env:"FORM_MIN_AGE" envDefault:"18"`
	MaxUpload        int64  `env:"FORM_MAX_UPLOAD" envDefault:"2097152"`
	DefaultLang      string `env:"FORM_DEFAULT_LANG" envDefault:"vi"`
	TranslationsFile string `env:"FORM_TRANSLATIONS_FILE"`
}

// LoadRuleSet returns the configured rule set, read from RulesFile when set
// and from the embedded defaults otherwise.
func LoadRuleSet(cfg Config) (*form.RuleSet, error) {
	var (
		sets map[string]*form.RuleSet
		err  error
	)
	if cfg.RulesFile != "" {
		sets, err = form.LoadRuleFile(cfg.RulesFile)
	} else {
		sets, err = form.DefaultRuleSets()
	}
	if err != nil {
		return nil, err
	}
	name := cfg.RuleSet
	if name == "" {
		name = form.DefaultSet
	}
	return form.Select(sets, name)
}

// NewFormContext builds the validation context for rules with a fresh table.
// A nil now uses the wall clock.
func NewFormContext(cfg Config, rules *form.RuleSet, now func() time.Time) *form.Context {
	return form.NewContext(rules,
		form.WithMinAge(cfg.MinAge),
		form.WithMaxUpload(cfg.MaxUpload),
		form.WithClock(now),
	)
}

// NewTranslator loads the embedded vi and en translations, overridden by
// TranslationsFile when set.
func NewTranslator(ctx context.Context, cfg Config, log *slog.Logger) (*i18n.Translator, error) {
	adapter := i18n.MultiAdapter{i18n.FSAdapter{FS: translations, Dir: "translations"}}
	if cfg.TranslationsFile != "" {
		adapter = append(adapter, i18n.FileAdapter{Path: cfg.TranslationsFile})
	}

	opts := []i18n.Option{i18n.WithMissingTranslationsLogging(false)}
	if cfg.DefaultLang != "" {
		opts = append(opts, i18n.WithDefaultLanguage(cfg.DefaultLang))
	}
	if log != nil {
		opts = append(opts, i18n.WithLogger(log))
	}

	tr, err := i18n.NewTranslator(ctx, adapter, opts...)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	return tr, nil
}
