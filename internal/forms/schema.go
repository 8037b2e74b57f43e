package forms

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// QuestionType is the closed set of question kinds. Anything outside
// this set renders through the text-input fallback.
type QuestionType string

const (
	QuestionSingleSelection QuestionType = "SingleSelection"
	QuestionMultiSelection  QuestionType = "MultiSelection"
	QuestionSlidingScale    QuestionType = "SlidingScale"
	QuestionEmotiveScale    QuestionType = "EmotiveScale"
	QuestionSignalScale     QuestionType = "SignalScale"
	QuestionDetailForm      QuestionType = "DetailForm"
)

// IsScale reports whether t is one of the ordered-label scale kinds,
// whose stored value is a 1-based index into the options list.
func (t QuestionType) IsScale() bool {
	switch t {
	case QuestionSlidingScale, QuestionEmotiveScale, QuestionSignalScale:
		return true
	}
	return false
}

// ConditionalDisplay gates a section on a previously stored answer.
type ConditionalDisplay struct {
	QuestionAlias string `json:"questionAlias"`
	Operator      string `json:"operator"`
	ExpectedValue string `json:"expectedValue"`
}

type Section struct {
	ID                 int64               `json:"id"`
	Name               string              `json:"name"`
	Color              string              `json:"color,omitempty"`
	Order              int                 `json:"order"`
	ConditionalDisplay *ConditionalDisplay `json:"conditionalDisplay,omitempty"`
	Steps              []Step              `json:"steps"`
}

type Step struct {
	ID        int64      `json:"id"`
	Order     int        `json:"order"`
	Questions []Question `json:"questions"`
}

type Question struct {
	Type     QuestionType  `json:"type"`
	Alias    string        `json:"alias"`
	Props    QuestionProps `json:"props"`
	Editable *bool         `json:"editable,omitempty"`
}

// IsEditable defaults to true when the flag is absent.
func (q Question) IsEditable() bool {
	return q.Editable == nil || *q.Editable
}

// QuestionProps carries the type-specific configuration. Which fields
// are meaningful depends on Question.Type; unused fields stay zero.
type QuestionProps struct {
	Label         string            `json:"label,omitempty"`
	Placeholder   string            `json:"placeholder,omitempty"`
	Options       []string          `json:"options,omitempty"`
	OtherOption   bool              `json:"otherOption,omitempty"`
	MinSelections int               `json:"minSelections,omitempty"`
	MaxSelections int               `json:"maxSelections,omitempty"`
	Required      bool              `json:"required,omitempty"`
	Fields        []DetailFormField `json:"fields,omitempty"`
}

// DetailFormField is one sub-field of a DetailForm question. Its
// answer lives under the detailForm.<alias> path of the answer
// document.
type DetailFormField struct {
	ID          int64    `json:"id"`
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Alias       string   `json:"alias"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// flowDocument is the persisted shape of onboarding_questions.data.
type flowDocument struct {
	Sections []Section `json:"sections"`
}

// ParseSections decodes the stored flow document. A null/empty
// document parses to an empty section list rather than an error.
func ParseSections(data datatypes.JSON) ([]Section, error) {
	if len(data) == 0 {
		return []Section{}, nil
	}
	var doc flowDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse flow sections: %w", err)
	}
	if doc.Sections == nil {
		doc.Sections = []Section{}
	}
	return doc.Sections, nil
}

// MarshalSections encodes the full section list back into the single
// JSON document the flow row stores.
func MarshalSections(sections []Section) (datatypes.JSON, error) {
	if sections == nil {
		sections = []Section{}
	}
	raw, err := json.Marshal(flowDocument{Sections: sections})
	if err != nil {
		return nil, fmt.Errorf("marshal flow sections: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// QuestionIndex maps question alias to its config for renderer lookup.
// Aliases are unique within a flow; a duplicate silently keeps the
// first occurrence so stored answers remain unambiguous.
func QuestionIndex(sections []Section) map[string]Question {
	idx := make(map[string]Question)
	for _, sec := range sections {
		for _, step := range sec.Steps {
			for _, q := range step.Questions {
				if q.Alias == "" {
					continue
				}
				if _, ok := idx[q.Alias]; !ok {
					idx[q.Alias] = q
				}
			}
		}
	}
	return idx
}
