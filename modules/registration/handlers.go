package registration

import (
	"errors"
	"net/http"
	"slices"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// ErrFilesNotSupported rejects JSON submissions that reference files.
var ErrFilesNotSupported = handler.NewHTTPError(http.StatusBadRequest, "errors.files_not_supported")

func (s *Service) translator(ctx handler.Context) (string, Translate) {
	lang := ctx.Locale()
	if lang == "" {
		lang = s.tr.DefaultLanguage()
	}
	return lang, func(key string, params map[string]any) string {
		return s.tr.TParams(lang, key, params)
	}
}

func (s *Service) page(ctx handler.Context, _ struct{}) handler.Response {
	lang, t := s.translator(ctx)
	return handler.Templ(s.pageComponent(lang, t, s.formParams(t, nil, nil)))
}

func (s *Service) submit(ctx handler.Context, req form.Submission) handler.Response {
	out, err := form.Submit(s.form, req.Values)
	if err != nil {
		return handler.Error(err)
	}

	lang, t := s.translator(ctx)
	if !out.Valid {
		s.log.InfoContext(ctx, "submission rejected", logger.Fields(failedFields(out.Results)...))
		fp := s.formParams(t, out.Values, out.Results)
		fp.Alert = t("app.fix_errors", nil)
		return handler.WithStatus(http.StatusUnprocessableEntity,
			handler.TemplPartial(s.views.Form(fp), s.pageComponent(lang, t, fp)))
	}

	rec := *out.Record
	s.log.InfoContext(ctx, "submission accepted", logger.Sequence(rec.Seq))
	if !ctx.IsDataStar() {
		return handler.Redirect("/")
	}

	fp := s.formParams(t, nil, nil)
	fp.Notice = t("app.added", seqParam(rec.Seq))
	patches := []handler.TemplPatch{
		handler.Patch(s.views.Row(RowParams{Record: s.displayRecord(t, rec)}),
			handler.WithTarget("#"+RecordsBodyID),
			handler.WithPatchMode(handler.PatchAppend),
		),
		handler.Patch(s.views.Form(fp)),
	}
	if rec.Seq == 1 {
		patches = append(patches, handler.Patch(templ.NopComponent,
			handler.WithTarget("#"+RecordsEmptyID),
			handler.WithPatchMode(handler.PatchRemove),
		))
	}
	return handler.TemplMulti(patches...)
}

func (s *Service) records(ctx handler.Context, _ struct{}) handler.Response {
	_, t := s.translator(ctx)
	recs := s.displayRecords(t)
	return handler.JSON(recs, handler.WithJSONMeta(map[string]any{"total": len(recs)}))
}

type rulesResponse struct {
	Name       string           `json:"name"`
	Title      string           `json:"title"`
	YesLabel   string           `json:"yes_label"`
	NoLabel    string           `json:"no_label"`
	Fields     []form.FieldRule `json:"fields"`
	Predicates []string         `json:"predicates"`
}

func (s *Service) rules(ctx handler.Context, _ struct{}) handler.Response {
	set := s.form.Rules
	yes, no := set.BoolLabels()
	return handler.JSON(rulesResponse{
		Name:       set.Name(),
		Title:      set.Title(),
		YesLabel:   yes,
		NoLabel:    no,
		Fields:     set.Rules(),
		Predicates: form.DefaultPredicates().Names(),
	})
}

// apiSubmission is a JSON object of field values. Strings, numbers, booleans
// and arrays of them are accepted; files are not.
type apiSubmission map[string]any

type fieldResult struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Key     string `json:"key,omitempty"`
}

type submissionResult struct {
	Valid  bool          `json:"valid"`
	Fields []fieldResult `json:"fields"`
	Record *form.Record  `json:"record,omitempty"`
}

func (s *Service) apiSubmit(ctx handler.Context, req apiSubmission) handler.Response {
	for _, v := range req {
		if hasObject(v) {
			return handler.JSONError(ErrFilesNotSupported)
		}
	}
	values, err := form.ValuesFromMap(req, s.form.MaxUpload)
	if err != nil {
		if errors.Is(err, form.ErrInvalidValue) {
			return handler.JSONError(handler.ErrBadRequest)
		}
		return handler.JSONError(err)
	}

	out, err := form.Submit(s.form, values)
	if err != nil {
		return handler.JSONError(err)
	}

	_, t := s.translator(ctx)
	res := submissionResult{Valid: out.Valid, Fields: s.fieldResults(t, out.Results)}
	if !out.Valid {
		failed := failedFields(out.Results)
		s.log.InfoContext(ctx, "api submission rejected", logger.Fields(failed...))

		details := make(map[string][]string, len(failed))
		for _, fr := range res.Fields {
			if !fr.Valid {
				details[fr.Field] = []string{fr.Message}
			}
		}
		return handler.JSON(handler.JSONResponse{
			Data: res,
			Error: &handler.ErrorDetail{
				Code:    "validation_error",
				Message: t("app.fix_errors", nil),
				Details: details,
			},
		}, handler.WithJSONStatus(http.StatusUnprocessableEntity))
	}

	rec := s.displayRecord(t, *out.Record)
	res.Record = &rec
	s.log.InfoContext(ctx, "api submission accepted", logger.Sequence(rec.Seq))
	return handler.JSON(res, handler.WithJSONStatus(http.StatusCreated))
}

// hasObject reports whether v is or contains a JSON object. Objects are how
// offline submissions reference files on disk.
func hasObject(v any) bool {
	switch x := v.(type) {
	case map[string]any:
		return true
	case []any:
		return slices.ContainsFunc(x, hasObject)
	}
	return false
}

func failedFields(results form.Results) []string {
	var out []string
	for field, res := range results {
		if !res.Valid {
			out = append(out, field)
		}
	}
	slices.Sort(out)
	return out
}

// fieldResults lists the verdicts in rule order.
func (s *Service) fieldResults(t Translate, results form.Results) []fieldResult {
	fields := s.form.Rules.Fields()
	out := make([]fieldResult, 0, len(fields))
	for _, field := range fields {
		res := results[field]
		fr := fieldResult{Field: field, Valid: res.Valid}
		if !res.Valid {
			fr.Message = message(t, res)
			fr.Key = res.Key
		}
		out = append(out, fr)
	}
	return out
}

func (s *Service) pageComponent(lang string, t Translate, fp FormParams) templ.Component {
	return s.views.Page(PageParams{
		Lang:      lang,
		Languages: s.tr.Languages(),
		Title:     t(s.form.Rules.Title(), nil),
		Form:      s.views.Form(fp),
		Records:   s.views.Records(RecordsParams{Columns: s.columns(t), Records: s.displayRecords(t), T: t}),
		T:         t,
	})
}

// formParams builds the form fields, pre-filled from values and annotated
// with the failures in results. Both may be nil.
func (s *Service) formParams(t Translate, values form.Values, results form.Results) FormParams {
	rules := s.form.Rules.Rules()
	fp := FormParams{
		Title:  t(s.form.Rules.Title(), nil),
		Fields: make([]Field, 0, len(rules)),
		T:      t,
	}
	for _, r := range rules {
		v := values[r.Field]
		f := Field{
			Name:     r.Field,
			Label:    t(r.DisplayLabel(), nil),
			Input:    inputFor(r),
			Optional: r.Optional,
		}
		switch f.Input {
		case InputFile:
		case InputCheckbox:
			if v.Checked() {
				f.Value = "on"
			}
		default:
			f.Value = v.Text()
		}
		selected := v.List()
		for _, opt := range r.Options {
			f.Choices = append(f.Choices, Choice{
				Value:    opt,
				Label:    optionLabel(t, opt),
				Selected: slices.Contains(selected, opt),
			})
		}
		if res, ok := results[r.Field]; ok && !res.Valid {
			f.Error = message(t, res)
		}
		fp.Fields = append(fp.Fields, f)
	}
	return fp
}

// inputFor picks the control for r: the format decides for structured
// values, then options, then the rule's Input.
func inputFor(r form.FieldRule) string {
	switch r.Format {
	case form.FormatDay:
		return InputDate
	case form.FormatFile:
		return InputFile
	case form.FormatBool:
		return InputCheckbox
	case form.FormatList:
		return InputCheckboxes
	}
	if len(r.Options) > 0 {
		return InputRadio
	}
	if r.Input != "" {
		return r.Input
	}
	if r.Predicate == "email" {
		return InputEmail
	}
	return InputText
}

// optionLabel translates an option value, falling back to the value itself.
func optionLabel(t Translate, opt string) string {
	key := "form.option." + opt
	if label := t(key, nil); label != key {
		return label
	}
	return opt
}

// message translates a failed result, preferring its key.
func message(t Translate, res form.Result) string {
	if res.Key != "" {
		return t(res.Key, res.Params)
	}
	return t(res.Message, res.Params)
}

func (s *Service) columns(t Translate) []string {
	var cols []string
	for _, r := range s.form.Rules.Rules() {
		if !r.Hidden {
			cols = append(cols, t(r.DisplayLabel(), nil))
		}
	}
	return cols
}

func (s *Service) displayRecords(t Translate) []form.Record {
	recs := s.form.Table.Records()
	for i, rec := range recs {
		recs[i] = s.displayRecord(t, rec)
	}
	return recs
}

// displayRecord translates labels, yes/no texts and option values of rec.
func (s *Service) displayRecord(t Translate, rec form.Record) form.Record {
	cells := make([]form.Cell, len(rec.Cells))
	for i, c := range rec.Cells {
		c.Label = t(c.Label, nil)
		if r, ok := s.form.Rules.Rule(c.Field); ok {
			switch {
			case r.Format == form.FormatBool:
				c.Text = t(c.Text, nil)
			case len(r.Options) > 0 && len(c.Items) > 0:
				items := make([]string, len(c.Items))
				for j, item := range c.Items {
					items[j] = optionLabel(t, item)
				}
				c.Text = form.JoinChoices(items)
			case len(r.Options) > 0 && c.Text != "":
				c.Text = optionLabel(t, c.Text)
			}
		}
		cells[i] = c
	}
	rec.Cells = cells
	return rec
}
