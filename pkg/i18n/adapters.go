package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// TranslationAdapter loads translations from some source.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves translations from memory.
type MapAdapter map[string]map[string]any

func (a MapAdapter) Load(context.Context) (map[string]map[string]any, error) {
	return a, nil
}

// FileAdapter loads one YAML or JSON file.
type FileAdapter struct {
	Path string
}

func (a FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	parser, err := ParserFor(a.Path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return parser.Parse(content)
}

// FSAdapter loads every YAML and JSON file in dir of fsys (for example an
// embed.FS) and merges them. Later files override earlier keys.
type FSAdapter struct {
	FS  fs.FS
	Dir string
}

func (a FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	entries, err := fs.ReadDir(a.FS, a.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	all := make(map[string]map[string]any)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}
		if entry.IsDir() {
			continue
		}
		parser, err := ParserFor(entry.Name())
		if err != nil {
			continue
		}
		content, err := fs.ReadFile(a.FS, path.Join(a.Dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFailedToReadFile, entry.Name(), err)
		}
		parsed, err := parser.Parse(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		merge(all, parsed)
	}
	return all, nil
}

// MultiAdapter merges several sources in order.
type MultiAdapter []TranslationAdapter

func (a MultiAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	all := make(map[string]map[string]any)
	for _, src := range a {
		if src == nil {
			continue
		}
		parsed, err := src.Load(ctx)
		if err != nil {
			return nil, err
		}
		merge(all, parsed)
	}
	return all, nil
}

func merge(dst, src map[string]map[string]any) {
	for lang, tree := range src {
		if dst[lang] == nil {
			dst[lang] = make(map[string]any)
		}
		mergeTree(dst[lang], tree)
	}
}

func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				mergeTree(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}
