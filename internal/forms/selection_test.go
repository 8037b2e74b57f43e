package forms

import (
	"errors"
	"reflect"
	"testing"
)

func TestApplySelectionRejectsOverMax(t *testing.T) {
	props := QuestionProps{MaxSelections: 2}
	current := []string{"solar", "wind"}

	got, err := ApplySelection(current, []string{"solar", "wind", "storage"}, props)
	if !errors.Is(err, ErrTooManySelections) {
		t.Fatalf("err: want=ErrTooManySelections got=%v", err)
	}
	if !reflect.DeepEqual(got, current) {
		t.Fatalf("prior selection must be untouched: want=%v got=%v", current, got)
	}
}

func TestApplySelectionWithinBounds(t *testing.T) {
	props := QuestionProps{MaxSelections: 3}
	got, err := ApplySelection([]string{"solar"}, []string{"solar", "wind"}, props)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"solar", "wind"}) {
		t.Fatalf("selection: want=[solar wind] got=%v", got)
	}
}

func TestValidateSelectionCountMin(t *testing.T) {
	props := QuestionProps{MinSelections: 2}
	if err := ValidateSelectionCount([]string{"solar"}, props); !errors.Is(err, ErrTooFewSelections) {
		t.Fatalf("err: want=ErrTooFewSelections got=%v", err)
	}
	if err := ValidateSelectionCount([]string{"solar", "wind"}, props); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestScaleIndexLabelIdentity(t *testing.T) {
	options := []string{"never", "rarely", "sometimes", "often", "always"}
	for idx := 1; idx <= len(options); idx++ {
		label, err := ScaleIndexToLabel(options, idx)
		if err != nil {
			t.Fatalf("index %d: %v", idx, err)
		}
		back, err := ScaleLabelToIndex(options, label)
		if err != nil {
			t.Fatalf("label %q: %v", label, err)
		}
		if back != idx {
			t.Fatalf("round trip: want=%d got=%d", idx, back)
		}
	}
}

func TestScaleIndexOutOfRange(t *testing.T) {
	options := []string{"low", "high"}
	for _, idx := range []int{0, 3, -1} {
		if _, err := ScaleIndexToLabel(options, idx); err == nil {
			t.Fatalf("index %d: want error", idx)
		}
	}
}

func TestReconcileOtherEmptyValue(t *testing.T) {
	selection, otherText, isOther := ReconcileOther("", []string{"a"}, true)
	if selection != "" || otherText != "" || isOther {
		t.Fatalf("empty value: want no other state, got (%q, %q, %v)", selection, otherText, isOther)
	}
}
