package forms

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

// AnswerDocument is the single JSON object per respondent, keyed by
// question alias (dot-path for nested DetailForm fields).
type AnswerDocument map[string]any

// ParseAnswers decodes a profile's stored data blob. Null parses to an
// empty document.
func ParseAnswers(data datatypes.JSON) (AnswerDocument, error) {
	if len(data) == 0 {
		return AnswerDocument{}, nil
	}
	var doc AnswerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse answer document: %w", err)
	}
	if doc == nil {
		doc = AnswerDocument{}
	}
	return doc, nil
}

func (d AnswerDocument) Marshal() (datatypes.JSON, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal answer document: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// Get resolves a dot-separated path. The bool reports whether the full
// path exists.
func (d AnswerDocument) Get(path string) (any, bool) {
	if d == nil || path == "" {
		return nil, false
	}
	segments := strings.Split(path, ".")
	var cur any = map[string]any(d)
	for _, seg := range segments {
		m, ok := cur.(map[string]any)
		if !ok {
			if ad, isDoc := cur.(AnswerDocument); isDoc {
				m = map[string]any(ad)
			} else {
				return nil, false
			}
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set writes value at a dot-separated path, creating intermediate
// objects as needed. Sibling keys at every level are preserved; only a
// non-object intermediate is replaced by an object.
func (d AnswerDocument) Set(path string, value any) {
	if d == nil || path == "" {
		return
	}
	segments := strings.Split(path, ".")
	cur := map[string]any(d)
	for i, seg := range segments {
		if i == len(segments)-1 {
			cur[seg] = value
			return
		}
		next, ok := cur[seg].(map[string]any)
		if !ok {
			if ad, isDoc := cur[seg].(AnswerDocument); isDoc {
				next = map[string]any(ad)
			} else {
				next = map[string]any{}
			}
			cur[seg] = next
		}
		cur = next
	}
}

// Delete removes the leaf at path, leaving siblings and any now-empty
// intermediate objects alone.
func (d AnswerDocument) Delete(path string) {
	if d == nil || path == "" {
		return
	}
	segments := strings.Split(path, ".")
	cur := map[string]any(d)
	for i, seg := range segments {
		if i == len(segments)-1 {
			delete(cur, seg)
			return
		}
		next, ok := cur[seg].(map[string]any)
		if !ok {
			return
		}
		cur = next
	}
}

// StringValue coerces a stored answer to its string form. Selection
// answers arrive from JSON as string; scale answers may be float64.
func StringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return strings.Trim(string(raw), `"`)
	}
}

// StringSlice coerces a stored answer to a list of strings. JSON
// decoding yields []any for arrays; a bare string becomes a one-item
// list.
func StringSlice(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return t
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, StringValue(item))
		}
		return out
	}
	return nil
}
