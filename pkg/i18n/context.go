package i18n

import (
	"context"
	"log/slog"
)

type localeKey struct{}

// WithLocale stores lang in ctx.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeKey{}, lang)
}

// Locale returns the language stored in ctx, or "" when none is set.
func Locale(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	lang, _ := ctx.Value(localeKey{}).(string)
	return lang
}

// LoggerExtractor adds lang to log records written with a request context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if lang := Locale(ctx); lang != "" {
			return slog.String("lang", lang), true
		}
		return slog.Attr{}, false
	}
}
