package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no option overrides it.
const DefaultLanguage = "vi"

// Translator resolves message keys. It is immutable after construction and
// safe for concurrent use.
type Translator struct {
	translations map[string]map[string]any
	defaultLang  string
	langs        []string
	matcher      language.Matcher
	logger       *slog.Logger
	logMissing   bool
}

// Option configures a Translator.
type Option func(*Translator)

func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = strings.ToLower(lang)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every key that falls
// back to the literal key.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) { t.logMissing = enabled }
}

// NewTranslator loads translations from adapter. The default language is
// always supported, even when it has no translations of its own.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	t.translations = make(map[string]map[string]any, len(translations))
	for lang, tree := range translations {
		if _, err := language.Parse(lang); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
		t.translations[strings.ToLower(lang)] = tree
	}
	if len(t.translations) == 0 {
		return nil, ErrNoTranslations
	}

	// The default goes first: the matcher falls back to its first tag.
	t.langs = []string{t.defaultLang}
	for lang := range t.translations {
		if lang != t.defaultLang {
			t.langs = append(t.langs, lang)
		}
	}
	slices.Sort(t.langs[1:])

	tags := make([]language.Tag, len(t.langs))
	for i, lang := range t.langs {
		tags[i] = language.Make(lang)
	}
	t.matcher = language.NewMatcher(tags)

	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.langs))
	return t, nil
}

// Languages returns the supported languages, default first.
func (t *Translator) Languages() []string {
	return slices.Clone(t.langs)
}

func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match returns the supported language closest to the given preferences.
// Each preference may be a tag ("en-US") or a whole Accept-Language value.
// Unusable preferences yield the default language.
func (t *Translator) Match(preferences ...string) string {
	prefs := make([]string, 0, len(preferences))
	for _, p := range preferences {
		if p = strings.TrimSpace(p); p != "" {
			prefs = append(prefs, p)
		}
	}
	if len(prefs) == 0 {
		return t.defaultLang
	}
	_, idx := language.MatchStrings(t.matcher, prefs...)
	return t.langs[idx]
}

// Supports reports whether lang is one of the supported languages.
func (t *Translator) Supports(lang string) bool {
	return slices.Contains(t.langs, strings.ToLower(lang))
}

// Has reports whether key is translated in lang itself, without fallback.
func (t *Translator) Has(lang, key string) bool {
	_, ok := lookup(t.translations[strings.ToLower(lang)], key)
	return ok
}

// T translates key into lang. args are placeholder name/value pairs:
//
//	t.T("en", "greeting", "name", "An") // "Hello, An!" for "Hello, %{name}!"
func (t *Translator) T(lang, key string, args ...string) string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return substitute(t.resolve(lang, key), params)
}

// TParams is T with placeholder values taken from a map, as carried by
// validation errors.
func (t *Translator) TParams(lang, key string, params map[string]any) string {
	str := make(map[string]string, len(params))
	for k, v := range params {
		str[k] = fmt.Sprint(v)
	}
	return substitute(t.resolve(lang, key), str)
}

// Tc translates into the language stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(Locale(ctx), key, args...)
}

func (t *Translator) resolve(lang, key string) string {
	lang = strings.ToLower(lang)
	if s, ok := lookupString(t.translations[lang], key); ok {
		return s
	}
	if lang != t.defaultLang {
		if s, ok := lookupString(t.translations[t.defaultLang], key); ok {
			return s
		}
	}
	if t.logMissing {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	return key
}

func lookupString(tree map[string]any, key string) (string, bool) {
	v, ok := lookup(tree, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// lookup accepts both flat keys ("a.b" at the top level) and nested trees.
func lookup(tree map[string]any, key string) (any, bool) {
	if tree == nil || key == "" {
		return nil, false
	}
	if v, ok := tree[key]; ok {
		return v, true
	}
	var cur any = tree
	for part := range strings.SplitSeq(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} placeholders; unknown names are left as is.
func substitute(tmpl string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
