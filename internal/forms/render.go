package forms

import "strings"

// InputKind names the widget a question resolves to.
type InputKind string

const (
	InputDropdown    InputKind = "dropdown"
	InputMultiSelect InputKind = "multi_select"
	InputScale       InputKind = "scale"
	InputDetailForm  InputKind = "detail_form"
	InputText        InputKind = "text"
	InputTextarea    InputKind = "textarea"
)

// DetailFormNamespace is the answer-document key under which all
// DetailForm sub-field values nest.
const DetailFormNamespace = "detailForm"

// RenderedInput is the widget-ready view of one question plus its
// current value. Which fields are populated depends on Kind.
type RenderedInput struct {
	Kind          InputKind       `json:"kind"`
	Type          QuestionType    `json:"type"`
	Alias         string          `json:"alias"`
	Path          string          `json:"path"`
	Label         string          `json:"label,omitempty"`
	Placeholder   string          `json:"placeholder,omitempty"`
	Editable      bool            `json:"editable"`
	Required      bool            `json:"required,omitempty"`
	Options       []string        `json:"options,omitempty"`
	Value         any             `json:"value,omitempty"`
	Selected      []string        `json:"selected,omitempty"`
	OtherSelected bool            `json:"other_selected,omitempty"`
	OtherText     string          `json:"other_text,omitempty"`
	OtherIndex    int             `json:"other_index,omitempty"`
	MinSelections int             `json:"min_selections,omitempty"`
	MaxSelections int             `json:"max_selections,omitempty"`
	ScaleIndex    int             `json:"scale_index,omitempty"`
	ScaleLabel    string          `json:"scale_label,omitempty"`
	Fields        []RenderedInput `json:"fields,omitempty"`
}

// Render dispatches on the question type and folds the stored value
// into widget state. Unrecognized types take the text-input fallback
// so the document stays editable even under schema drift.
func Render(q Question, doc AnswerDocument) RenderedInput {
	in := RenderedInput{
		Type:        q.Type,
		Alias:       q.Alias,
		Path:        q.Alias,
		Label:       q.Props.Label,
		Placeholder: q.Props.Placeholder,
		Editable:    q.IsEditable(),
		Required:    q.Props.Required,
	}

	switch q.Type {
	case QuestionSingleSelection:
		in.Kind = InputDropdown
		in.Options = q.Props.Options
		raw, _ := doc.Get(q.Alias)
		selection, otherText, isOther := ReconcileOther(StringValue(raw), q.Props.Options, q.Props.OtherOption)
		in.Value = selection
		in.OtherSelected = isOther
		in.OtherText = otherText
		return in

	case QuestionMultiSelection:
		in.Kind = InputMultiSelect
		in.Options = q.Props.Options
		in.MinSelections = q.Props.MinSelections
		in.MaxSelections = q.Props.MaxSelections
		raw, _ := doc.Get(q.Alias)
		selected, otherText, otherIndex, isOther := ReconcileOtherList(StringSlice(raw), q.Props.Options, q.Props.OtherOption)
		in.Selected = selected
		in.OtherSelected = isOther
		in.OtherText = otherText
		in.OtherIndex = otherIndex
		return in

	case QuestionSlidingScale, QuestionEmotiveScale, QuestionSignalScale:
		in.Kind = InputScale
		in.Options = q.Props.Options
		raw, _ := doc.Get(q.Alias)
		idx := scaleIndexValue(raw)
		in.ScaleIndex = idx
		if label, err := ScaleIndexToLabel(q.Props.Options, idx); err == nil {
			in.ScaleLabel = label
		}
		return in

	case QuestionDetailForm:
		in.Kind = InputDetailForm
		in.Fields = make([]RenderedInput, 0, len(q.Props.Fields))
		for _, f := range q.Props.Fields {
			in.Fields = append(in.Fields, renderDetailField(f, doc))
		}
		return in
	}

	return renderTextFallback(in, doc)
}

// RenderByAlias renders whatever question the flow config holds for
// alias; with no matching config it still produces a text input so
// answers written under stale aliases remain reachable.
func RenderByAlias(index map[string]Question, alias string, doc AnswerDocument) RenderedInput {
	if q, ok := index[alias]; ok {
		return Render(q, doc)
	}
	in := RenderedInput{
		Alias:    alias,
		Path:     alias,
		Editable: true,
	}
	return renderTextFallback(in, doc)
}

func renderDetailField(f DetailFormField, doc AnswerDocument) RenderedInput {
	path := DetailFormNamespace + "." + f.Alias
	sub := RenderedInput{
		Kind:        InputText,
		Alias:       f.Alias,
		Path:        path,
		Label:       f.Label,
		Placeholder: f.Placeholder,
		Required:    f.Required,
		Editable:    true,
	}
	raw, _ := doc.Get(path)
	switch f.Type {
	case "select":
		sub.Kind = InputDropdown
		sub.Options = f.Options
		sub.Value = StringValue(raw)
	case "textarea":
		sub.Kind = InputTextarea
		sub.Value = StringValue(raw)
	default:
		sub.Value = StringValue(raw)
	}
	return sub
}

func renderTextFallback(in RenderedInput, doc AnswerDocument) RenderedInput {
	raw, _ := doc.Get(in.Path)
	value := StringValue(raw)
	in.Value = value
	if looksLongForm(in.Alias, value) {
		in.Kind = InputTextarea
	} else {
		in.Kind = InputText
	}
	return in
}

// looksLongForm decides text vs textarea for fallback rendering:
// an existing value over 50 chars, or a key name that suggests prose.
func looksLongForm(alias, value string) bool {
	if len(value) > 50 {
		return true
	}
	lower := strings.ToLower(alias)
	for _, hint := range []string{"description", "bio", "notes", "address"} {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func scaleIndexValue(raw any) int {
	switch t := raw.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		idx := 0
		for _, r := range t {
			if r < '0' || r > '9' {
				return 0
			}
			idx = idx*10 + int(r-'0')
		}
		return idx
	}
	return 0
}
