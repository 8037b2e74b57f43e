package forms

import (
	"reflect"
	"testing"
)

func TestAnswerDocumentSetPreservesSiblings(t *testing.T) {
	doc := AnswerDocument{
		"detailForm": map[string]any{
			"city":  "Oakland",
			"state": "CA",
		},
	}
	doc.Set("detailForm.zip", "94601")

	nested, ok := doc["detailForm"].(map[string]any)
	if !ok {
		t.Fatalf("detailForm is not an object: %T", doc["detailForm"])
	}
	want := map[string]any{"city": "Oakland", "state": "CA", "zip": "94601"}
	if !reflect.DeepEqual(nested, want) {
		t.Fatalf("nested: want=%v got=%v", want, nested)
	}
}

func TestAnswerDocumentSetCreatesIntermediates(t *testing.T) {
	doc := AnswerDocument{}
	doc.Set("detailForm.contact.phone", "555")

	got, ok := doc.Get("detailForm.contact.phone")
	if !ok || got != "555" {
		t.Fatalf("Get after Set: want=(555, true) got=(%v, %v)", got, ok)
	}
}

func TestAnswerDocumentSetReplacesNonObjectIntermediate(t *testing.T) {
	doc := AnswerDocument{"detailForm": "scalar"}
	doc.Set("detailForm.city", "Oakland")

	got, ok := doc.Get("detailForm.city")
	if !ok || got != "Oakland" {
		t.Fatalf("Get: want=(Oakland, true) got=(%v, %v)", got, ok)
	}
}

func TestAnswerDocumentGetMissing(t *testing.T) {
	doc := AnswerDocument{"a": map[string]any{"b": 1}}
	if _, ok := doc.Get("a.c"); ok {
		t.Fatalf("Get a.c: want missing")
	}
	if _, ok := doc.Get("a.b.c"); ok {
		t.Fatalf("Get a.b.c through a leaf: want missing")
	}
}

func TestAnswerDocumentDelete(t *testing.T) {
	doc := AnswerDocument{
		"detailForm": map[string]any{"city": "Oakland", "state": "CA"},
	}
	doc.Delete("detailForm.city")

	if _, ok := doc.Get("detailForm.city"); ok {
		t.Fatalf("city still present after Delete")
	}
	if got, ok := doc.Get("detailForm.state"); !ok || got != "CA" {
		t.Fatalf("sibling: want=(CA, true) got=(%v, %v)", got, ok)
	}
}

func TestStringSliceCoercions(t *testing.T) {
	if got := StringSlice([]any{"a", "b"}); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("[]any: want=[a b] got=%v", got)
	}
	if got := StringSlice("solo"); !reflect.DeepEqual(got, []string{"solo"}) {
		t.Fatalf("string: want=[solo] got=%v", got)
	}
	if got := StringSlice(nil); got != nil {
		t.Fatalf("nil: want=nil got=%v", got)
	}
}
