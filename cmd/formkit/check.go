package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/modules/registration"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// ErrNoSubmission is returned when check is called without a file.
var ErrNoSubmission = errors.New("submission file is required")

type checkCmd struct {
	form   formFlags
	lang   string
	format string
	today  string
}

func newCheckCmd() *checkCmd {
	return &checkCmd{}
}

func (cmd *checkCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "check",
		Usage:     "Validate a submission file against a rule set",
		UsageText: "formkit check [options] submission.yaml",
		Description: `Reads field values from a YAML or JSON file and prints a verdict per field.
File fields are given as {path: avatar.png}, relative to the submission file.
Exits with status 1 when any field fails.`,
		Flags: append(cmd.form.flags(),
			&cli.StringFlag{
				Name:        "lang",
				Usage:       "language of the messages",
				Destination: &cmd.lang,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "today",
				Usage:       "reference date for age checks (YYYY-MM-DD)",
				Destination: &cmd.today,
			},
		),
		Action: cmd.run,
	})
	return app
}

func (cmd *checkCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return ErrNoSubmission
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cmd.form.apply(&cfg.Form)

	valid, err := cmd.check(ctx, c.Root().Writer, cfg.Form, c.Args().First())
	if err != nil {
		return err
	}
	if !valid {
		return cli.Exit("", 1)
	}
	return nil
}

type fieldVerdict struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

type checkReport struct {
	RuleSet string         `json:"rule_set"`
	Valid   bool           `json:"valid"`
	Fields  []fieldVerdict `json:"fields"`
	Record  *form.Record   `json:"record,omitempty"`
}

// check validates the submission at path and writes the report to w.
func (cmd *checkCmd) check(ctx context.Context, w io.Writer, cfg registration.Config, path string) (bool, error) {
	rules, err := registration.LoadRuleSet(cfg)
	if err != nil {
		return false, err
	}
	tr, err := registration.NewTranslator(ctx, cfg, nil)
	if err != nil {
		return false, err
	}
	lang := tr.DefaultLanguage()
	if cmd.lang != "" {
		lang = tr.Match(cmd.lang)
	}

	var now func() time.Time
	if cmd.today != "" {
		today, err := validator.ParseDate(cmd.today)
		if err != nil {
			return false, fmt.Errorf("--today: %w", err)
		}
		now = func() time.Time { return today }
	}
	fctx := registration.NewFormContext(cfg, rules, now)

	values, err := readSubmission(path, fctx.MaxUpload)
	if err != nil {
		return false, err
	}
	out, err := form.Submit(fctx, values)
	if err != nil {
		return false, err
	}

	t := func(key string, params map[string]any) string { return tr.TParams(lang, key, params) }
	report := checkReport{RuleSet: rules.Name(), Valid: out.Valid}
	for _, r := range rules.Rules() {
		res := out.Results[r.Field]
		v := fieldVerdict{Field: r.Field, Label: t(r.DisplayLabel(), nil), Valid: res.Valid}
		if !res.Valid {
			key := res.Key
			if key == "" {
				key = res.Message
			}
			v.Message = t(key, res.Params)
		}
		report.Fields = append(report.Fields, v)
	}
	if out.Record != nil {
		rec := *out.Record
		for i, cell := range rec.Cells {
			rec.Cells[i].Label = t(cell.Label, nil)
			rec.Cells[i].Image = ""
		}
		report.Record = &rec
	}

	if cmd.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return out.Valid, enc.Encode(report)
	}
	return out.Valid, writeReport(w, report)
}

func writeReport(w io.Writer, report checkReport) error {
	failed := 0
	for _, f := range report.Fields {
		if f.Valid {
			fmt.Fprintf(w, "  ok    %s\n", f.Field)
			continue
		}
		failed++
		fmt.Fprintf(w, "  FAIL  %s: %s\n", f.Field, f.Message)
	}
	if report.Record != nil {
		for _, cell := range report.Record.Cells {
			fmt.Fprintf(w, "  %s: %s\n", cell.Label, cell.Text)
		}
	}
	if failed > 0 {
		_, err := fmt.Fprintf(w, "%s: invalid (%d of %d fields failed)\n", report.RuleSet, failed, len(report.Fields))
		return err
	}
	_, err := fmt.Fprintf(w, "%s: valid\n", report.RuleSet)
	return err
}

// readSubmission decodes a YAML or JSON object of field values. Scalars keep
// their source text, so an unquoted 0901234567 stays a phone number. Relative
// file paths are resolved against the submission's directory.
func readSubmission(path string, maxUpload int64) (form.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read submission: %w", err)
	}
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse submission %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	raw := make(map[string]any, len(doc))
	for field, node := range doc {
		v, err := nodeValue(&node)
		if err != nil {
			return nil, fmt.Errorf("parse submission %s: field %q: %w", path, field, err)
		}
		if ref, ok := v.(map[string]any); ok {
			if p, ok := ref["path"].(string); ok && p != "" && !filepath.IsAbs(p) {
				ref["path"] = filepath.Join(dir, p)
			}
		}
		raw[field] = v
	}
	return form.ValuesFromMap(raw, maxUpload)
}

// nodeValue converts a submission node into the shapes form.ValuesFromMap
// accepts. Numbers and timestamps are passed through as written.
func nodeValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		default:
			return n.Value, nil
		}
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported value at line %d", n.Line)
}
