package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// RuleSet records the active rule set name.
func RuleSet(name string) slog.Attr {
	return slog.String("rule_set", name)
}

// Sequence records a record sequence number.
func Sequence(seq int) slog.Attr {
	return slog.Int("seq", seq)
}

// Fields records the names of the fields involved, e.g. those that failed.
func Fields(names ...string) slog.Attr {
	return slog.Any("fields", names)
}

func Lang(tag string) slog.Attr {
	if tag == "" {
		return slog.Attr{}
	}
	return slog.String("lang", tag)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
