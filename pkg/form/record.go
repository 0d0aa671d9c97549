package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// DisplayDateLayout is how dates appear in records.
const DisplayDateLayout = "02/01/2006"

// Cell is one displayed column of a record. Items holds the selected values
// of a list field; Text is their joined form.
type Cell struct {
	Field string   `json:"field"`
	Label string   `json:"label"`
	Text  string   `json:"text"`
	Items []string `json:"items,omitempty"`
	Image string   `json:"image,omitempty"`
}

// Record is an accepted submission, formatted for display.
type Record struct {
	Seq       int       `json:"seq"`
	Cells     []Cell    `json:"cells"`
	CreatedAt time.Time `json:"created_at"`
}

// Cell returns the cell for field.
func (r Record) Cell(field string) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Field == field {
			return c, true
		}
	}
	return Cell{}, false
}

// FormatDate converts YYYY-MM-DD into DD/MM/YYYY.
func FormatDate(s string) (string, error) {
	t, err := validator.ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DisplayDateLayout), nil
}

// JoinChoices renders a multi-select value.
func JoinChoices(items []string) string {
	return strings.Join(items, ", ")
}

// BuildRecord formats values into a record numbered seq, with cells in rule
// order. Hidden fields are skipped. Values are expected to have passed
// ValidateAll.
func BuildRecord(ctx *Context, values Values, seq int) (Record, error) {
	if ctx == nil || ctx.Rules == nil {
		return Record{}, ErrIncompleteContext
	}
	yes, no := ctx.Rules.BoolLabels()
	rec := Record{
		Seq:       seq,
		Cells:     make([]Cell, 0, len(ctx.Rules.rules)),
		CreatedAt: ctx.now(),
	}

	for _, r := range ctx.Rules.rules {
		if r.Hidden {
			continue
		}
		v := values[r.Field]
		cell := Cell{Field: r.Field, Label: r.DisplayLabel()}

		switch r.Format {
		case FormatDay:
			if !v.IsEmpty(FormatDay) {
				text, err := FormatDate(v.Text())
				if err != nil {
					return Record{}, fmt.Errorf("%s: %w", r.Field, err)
				}
				cell.Text = text
			}
		case FormatList:
			if items := v.List(); len(items) > 0 {
				cell.Items = items
				cell.Text = JoinChoices(items)
			}
		case FormatBool:
			cell.Text = no
			if v.Checked() {
				cell.Text = yes
			}
		case FormatFile:
			if v.File != nil {
				cell.Text = v.File.Filename
				if v.File.IsImage() {
					cell.Image = v.File.DataURL()
				}
			}
		default:
			cell.Text = v.Text()
		}
		rec.Cells = append(rec.Cells, cell)
	}
	return rec, nil
}
