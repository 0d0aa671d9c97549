package form

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// DefaultSet is the name of the built-in registration rule set.
const DefaultSet = "student"

type rulesFile struct {
	Sets map[string]setConfig `yaml:"sets"`
}

type setConfig struct {
	Title    string      `yaml:"title"`
	YesLabel string      `yaml:"yes_label"`
	NoLabel  string      `yaml:"no_label"`
	Fields   []FieldRule `yaml:"fields"`
}

// LoadRuleSets decodes a YAML rules document and compiles every set in it.
// Unknown keys are rejected. opts apply to every set, before the set's own
// title and labels.
func LoadRuleSets(r io.Reader, opts ...RuleSetOption) (map[string]*RuleSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc rulesFile
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadRules, err)
	}
	if len(doc.Sets) == 0 {
		return nil, fmt.Errorf("%w: no rule sets defined", ErrFailedToLoadRules)
	}

	sets := make(map[string]*RuleSet, len(doc.Sets))
	var errs []error
	for name, cfg := range doc.Sets {
		setOpts := append(append([]RuleSetOption(nil), opts...),
			WithTitle(cfg.Title),
			WithBoolLabels(cfg.YesLabel, cfg.NoLabel),
		)
		set, err := NewRuleSet(name, cfg.Fields, setOpts...)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sets[name] = set
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return sets, nil
}

// LoadRuleFile loads rule sets from a YAML file.
func LoadRuleFile(path string, opts ...RuleSetOption) (map[string]*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadRules, err)
	}
	defer func() { _ = f.Close() }()
	return LoadRuleSets(f, opts...)
}

// DefaultRuleSets compiles the embedded rule sets.
func DefaultRuleSets(opts ...RuleSetOption) (map[string]*RuleSet, error) {
	return LoadRuleSets(bytes.NewReader(defaultRules), opts...)
}

// Select returns the named set from sets.
func Select(sets map[string]*RuleSet, name string) (*RuleSet, error) {
	set, ok := sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuleSet, name)
	}
	return set, nil
}
