package i18n

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes one translation document into language -> tree maps.
type Parser interface {
	Parse(content []byte) (map[string]map[string]any, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(content []byte) (map[string]map[string]any, error)

func (f ParserFunc) Parse(content []byte) (map[string]map[string]any, error) { return f(content) }

// YAML parses YAML translation documents.
var YAML Parser = ParserFunc(func(content []byte) (map[string]map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseFile, err)
	}
	return splitLanguages(doc)
})

// JSON parses JSON translation documents.
var JSON Parser = ParserFunc(func(content []byte) (map[string]map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseFile, err)
	}
	return splitLanguages(doc)
})

// ParserFor picks a parser from the file extension.
func ParserFor(name string) (Parser, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
	}
}

func splitLanguages(doc map[string]any) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(doc))
	for lang, tree := range doc {
		m, ok := tree.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q must map to keys, got %T", ErrInvalidTranslations, lang, tree)
		}
		out[strings.ToLower(lang)] = m
	}
	return out, nil
}
