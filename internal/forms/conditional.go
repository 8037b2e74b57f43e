package forms

import "strings"

// Conditional operators understood by EvaluateCondition.
const (
	OperatorEquals    = "equals"
	OperatorNotEquals = "not_equals"
	OperatorContains  = "contains"
)

// EvaluateCondition decides whether a section gated by cond should be
// shown given the respondent's answers. A nil rule always shows. An
// unknown operator also shows: the form must stay usable under schema
// drift, so gating fails open.
func EvaluateCondition(cond *ConditionalDisplay, doc AnswerDocument) bool {
	if cond == nil {
		return true
	}
	value, _ := doc.Get(cond.QuestionAlias)
	switch cond.Operator {
	case OperatorEquals:
		return StringValue(value) == cond.ExpectedValue
	case OperatorNotEquals:
		return StringValue(value) != cond.ExpectedValue
	case OperatorContains:
		if list := StringSlice(value); len(list) > 0 {
			for _, item := range list {
				if item == cond.ExpectedValue {
					return true
				}
			}
			if s, ok := value.(string); ok {
				return strings.Contains(s, cond.ExpectedValue)
			}
			return false
		}
		return false
	}
	return true
}

// VisibleSections filters a flow's sections by their conditional rules.
func VisibleSections(sections []Section, doc AnswerDocument) []Section {
	out := make([]Section, 0, len(sections))
	for _, sec := range sections {
		if EvaluateCondition(sec.ConditionalDisplay, doc) {
			out = append(out, sec)
		}
	}
	return out
}
