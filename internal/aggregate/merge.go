// Package aggregate folds the independently written JSON blobs of a
// respondent (intake form, questionnaire answers, stage data) into one
// read-only view for admin and preview pages.
package aggregate

import "reflect"

// Merge reduces stage data objects left to right. Per top-level key:
// object over object shallow-merges with the incoming side winning on
// leaf conflicts, array over array concatenates and de-duplicates by
// value equality, anything else the incoming value replaces. The
// result depends on stage order for scalar conflicts; callers pass
// stages in workflow order on purpose.
func Merge(docs ...map[string]any) map[string]any {
	acc := map[string]any{}
	for _, doc := range docs {
		for key, incoming := range doc {
			existing, ok := acc[key]
			if !ok {
				acc[key] = incoming
				continue
			}
			acc[key] = mergeValue(existing, incoming)
		}
	}
	return acc
}

func mergeValue(existing, incoming any) any {
	if em, ok := asObject(existing); ok {
		if im, ok := asObject(incoming); ok {
			merged := make(map[string]any, len(em)+len(im))
			for k, v := range em {
				merged[k] = v
			}
			for k, v := range im {
				merged[k] = v
			}
			return merged
		}
	}
	if ea, ok := asArray(existing); ok {
		if ia, ok := asArray(incoming); ok {
			return dedupeConcat(ea, ia)
		}
	}
	return incoming
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func dedupeConcat(a, b []any) []any {
	out := make([]any, 0, len(a)+len(b))
	for _, v := range a {
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func containsValue(list []any, v any) bool {
	for _, item := range list {
		if reflect.DeepEqual(item, v) {
			return true
		}
	}
	return false
}
