package registration

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/pkg/form"
)

// Element ids patched by DataStar responses.
const (
	FormID         = "registration-form"
	RecordsBodyID  = "records-body"
	RecordsEmptyID = "records-empty"
	ToastID        = "toast-container"
)

// DataStarScript is the client bundle loaded by the default page.
const DataStarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"

// Translate resolves a message key in the request language.
type Translate func(key string, params map[string]any) string

// Input kinds rendered by the default form.
const (
	InputText       = "text"
	InputEmail      = "email"
	InputTel        = "tel"
	InputDate       = "date"
	InputFile       = "file"
	InputCheckbox   = "checkbox"
	InputRadio      = "radio"
	InputCheckboxes = "checkboxes"
	InputTextarea   = "textarea"
)

// Choice is one radio or checkbox option.
type Choice struct {
	Value    string
	Label    string
	Selected bool
}

// Field is a form field ready for rendering: labels and errors are translated.
type Field struct {
	Name     string
	Label    string
	Input    string
	Value    string
	Choices  []Choice
	Optional bool
	Error    string
}

// FormParams contains data for rendering the form.
type FormParams struct {
	Title  string
	Fields []Field
	Notice string
	Alert  string
	T      Translate
}

// RecordsParams contains data for rendering the record table. Records are
// already translated for display.
type RecordsParams struct {
	Columns []string
	Records []form.Record
	T       Translate
}

// RowParams contains data for rendering one record row.
type RowParams struct {
	Record form.Record
}

// PageParams contains data for rendering the full page. Form and Records are
// the rendered sections.
type PageParams struct {
	Lang      string
	Languages []string
	Title     string
	Form      templ.Component
	Records   templ.Component
	T         Translate
}

// Views are the components rendered by the service. Any nil entry is filled
// from DefaultViews.
type Views struct {
	Page       func(PageParams) templ.Component
	Form       func(FormParams) templ.Component
	Records    func(RecordsParams) templ.Component
	Row        func(RowParams) templ.Component
	ErrorPage  func(handler.ErrorPageParams) templ.Component
	ErrorToast func(handler.ErrorToastParams) templ.Component
}

// DefaultViews returns plain HTML components wired for DataStar.
func DefaultViews() *Views {
	return &Views{
		Page:       pageView,
		Form:       formView,
		Records:    recordsView,
		Row:        rowView,
		ErrorPage:  errorPageView,
		ErrorToast: errorToastView,
	}
}

func (v *Views) withDefaults() *Views {
	d := DefaultViews()
	if v == nil {
		return d
	}
	out := *v
	if out.Page == nil {
		out.Page = d.Page
	}
	if out.Form == nil {
		out.Form = d.Form
	}
	if out.Records == nil {
		out.Records = d.Records
	}
	if out.Row == nil {
		out.Row = d.Row
	}
	if out.ErrorPage == nil {
		out.ErrorPage = d.ErrorPage
	}
	if out.ErrorToast == nil {
		out.ErrorToast = d.ErrorToast
	}
	return &out
}

// htmlWriter stops writing after the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

var esc = templ.EscapeString[string]

func pageView(p PageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="`, esc(p.Lang), `"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`, esc(p.Title), `</title>`,
			`<script type="module" src="`, DataStarScript, `"></script></head><body><main>`)
		h.raw(`<header><h1>`, esc(p.Title), `</h1><nav aria-label="`, esc(p.T("app.language", nil)), `">`)
		for _, lang := range p.Languages {
			if lang == p.Lang {
				h.raw(`<strong>`, esc(lang), `</strong> `)
				continue
			}
			h.raw(`<a href="/?lang=`, esc(lang), `">`, esc(lang), `</a> `)
		}
		h.raw(`</nav></header><div id="`, ToastID, `"></div>`)
		h.component(ctx, p.Form)
		h.component(ctx, p.Records)
		h.raw(`</main></body></html>`)
		return h.err
	})
}

func formView(p FormParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<form id="`, FormID, `" method="post" action="/submit" enctype="multipart/form-data" novalidate`,
			` data-on-submit="@post('/submit', {contentType: 'form'})">`)
		if p.Notice != "" {
			h.raw(`<p class="notice" role="status">`, esc(p.Notice), `</p>`)
		}
		if p.Alert != "" {
			h.raw(`<p class="alert" role="alert">`, esc(p.Alert), `</p>`)
		}
		for _, f := range p.Fields {
			writeField(h, f, p.T)
		}
		h.raw(`<div class="actions"><button type="submit">`, esc(p.T("app.submit", nil)), `</button> `,
			`<button type="reset">`, esc(p.T("app.reset", nil)), `</button></div></form>`)
		return h.err
	})
}

func writeField(h *htmlWriter, f Field, t Translate) {
	id := "field-" + f.Name
	invalid := ""
	if f.Error != "" {
		invalid = ` aria-invalid="true" aria-describedby="` + id + `-error"`
	}

	h.raw(`<div class="field" id="`, id, `-wrap">`)
	switch f.Input {
	case InputCheckbox:
		checked := ""
		if f.Value != "" {
			checked = " checked"
		}
		h.raw(`<label><input type="checkbox" id="`, id, `" name="`, esc(f.Name), `" value="on"`, checked, invalid, `> `, esc(f.Label), `</label>`)
	case InputRadio, InputCheckboxes:
		kind := "radio"
		if f.Input == InputCheckboxes {
			kind = "checkbox"
		}
		h.raw(`<fieldset`, invalid, `><legend>`, esc(f.Label), optionalMark(f, t), `</legend>`)
		for _, c := range f.Choices {
			checked := ""
			if c.Selected {
				checked = " checked"
			}
			h.raw(`<label><input type="`, kind, `" name="`, esc(f.Name), `" value="`, esc(c.Value), `"`, checked, `> `, esc(c.Label), `</label> `)
		}
		h.raw(`</fieldset>`)
	case InputTextarea:
		h.raw(`<label for="`, id, `">`, esc(f.Label), optionalMark(f, t), `</label>`,
			`<textarea id="`, id, `" name="`, esc(f.Name), `"`, invalid, `>`, esc(f.Value), `</textarea>`)
	case InputFile:
		h.raw(`<label for="`, id, `">`, esc(f.Label), optionalMark(f, t), `</label>`,
			`<input type="file" id="`, id, `" name="`, esc(f.Name), `" accept="image/*"`, invalid, `>`)
	default:
		h.raw(`<label for="`, id, `">`, esc(f.Label), optionalMark(f, t), `</label>`,
			`<input type="`, esc(f.Input), `" id="`, id, `" name="`, esc(f.Name), `" value="`, esc(f.Value), `"`, invalid, `>`)
	}
	if f.Error != "" {
		h.raw(`<p class="error" id="`, id, `-error">`, esc(f.Error), `</p>`)
	}
	h.raw(`</div>`)
}

func optionalMark(f Field, t Translate) string {
	if !f.Optional {
		return ""
	}
	return ` <small>(` + esc(t("app.optional", nil)) + `)</small>`
}

func recordsView(p RecordsParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="records"><h2>`, esc(p.T("app.records", nil)), `</h2><table><thead><tr><th>`,
			esc(p.T("app.seq", nil)), `</th>`)
		for _, col := range p.Columns {
			h.raw(`<th>`, esc(col), `</th>`)
		}
		h.raw(`</tr></thead><tbody id="`, RecordsBodyID, `">`)
		if len(p.Records) == 0 {
			h.raw(`<tr id="`, RecordsEmptyID, `"><td colspan="`, strconv.Itoa(len(p.Columns)+1), `">`,
				esc(p.T("app.empty", nil)), `</td></tr>`)
		}
		for _, rec := range p.Records {
			h.component(ctx, rowView(RowParams{Record: rec}))
		}
		h.raw(`</tbody></table></section>`)
		return h.err
	})
}

func rowView(p RowParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		seq := strconv.Itoa(p.Record.Seq)
		h.raw(`<tr id="record-`, seq, `"><td>`, seq, `</td>`)
		for _, c := range p.Record.Cells {
			h.raw(`<td data-field="`, esc(c.Field), `">`, esc(c.Text))
			if c.Image != "" {
				h.raw(`<br><img src="`, esc(c.Image), `" alt="`, esc(c.Text), `" width="64">`)
			}
			h.raw(`</td>`)
		}
		h.raw(`</tr>`)
		return h.err
	})
}

func errorPageView(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		code := strconv.Itoa(p.StatusCode)
		h.raw(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`, code, `</title></head><body><main>`,
			`<h1>`, code, `</h1><p>`, esc(p.Error), `</p>`)
		if p.RequestID != "" {
			h.raw(`<p><small>`, esc(p.RequestID), `</small></p>`)
		}
		h.raw(`<p><a href="/">/</a></p></main></body></html>`)
		return h.err
	})
}

func errorToastView(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="toast toast-`, esc(p.Type), `" role="alert">`, esc(p.Message), `</div>`)
		return h.err
	})
}
