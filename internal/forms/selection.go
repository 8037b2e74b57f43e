package forms

import (
	"errors"
	"fmt"
)

// OtherSentinel is the selection value the UI shows when a stored
// answer is a custom string rather than a configured option. It is
// never persisted; the renderer reconstructs it purely from data.
const OtherSentinel = "other"

var (
	ErrTooManySelections = errors.New("selection exceeds maxSelections")
	ErrTooFewSelections  = errors.New("selection below minSelections")
)

func optionSet(options []string) map[string]struct{} {
	set := make(map[string]struct{}, len(options))
	for _, opt := range options {
		set[opt] = struct{}{}
	}
	return set
}

// ReconcileOther maps a stored single-selection value onto UI state.
// When otherOption is enabled and the value is not a configured
// option, the selection becomes the "other" sentinel and the actual
// value pre-fills the free-text box.
func ReconcileOther(value string, options []string, otherOption bool) (selection, otherText string, isOther bool) {
	if value == "" {
		return "", "", false
	}
	if _, known := optionSet(options)[value]; known {
		return value, "", false
	}
	if !otherOption {
		return value, "", false
	}
	return OtherSentinel, value, true
}

// ReconcileOtherList is the list analog for MultiSelection: configured
// options pass through, the first custom entry becomes the "other"
// free-text value. otherIndex is the custom entry's position in the
// stored list so RestoreOtherList can splice it back in place.
func ReconcileOtherList(values, options []string, otherOption bool) (selected []string, otherText string, otherIndex int, isOther bool) {
	known := optionSet(options)
	selected = make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := known[v]; ok {
			selected = append(selected, v)
			continue
		}
		if otherOption && !isOther {
			isOther = true
			otherText = v
			otherIndex = len(selected)
			continue
		}
		selected = append(selected, v)
	}
	return selected, otherText, otherIndex, isOther
}

// RestoreOtherList rebuilds the stored value from UI state so that an
// unmodified save round-trips to the identical document, custom entry
// back at its original position. JSON arrays are ordered; appending
// the other-text at the end would mutate any document whose custom
// value was not stored last.
func RestoreOtherList(selected []string, otherText string, isOther bool, otherIndex int) []string {
	if !isOther || otherText == "" {
		return append(make([]string, 0, len(selected)), selected...)
	}
	if otherIndex < 0 {
		otherIndex = 0
	}
	if otherIndex > len(selected) {
		otherIndex = len(selected)
	}
	out := make([]string, 0, len(selected)+1)
	out = append(out, selected[:otherIndex]...)
	out = append(out, otherText)
	out = append(out, selected[otherIndex:]...)
	return out
}

// ApplySelection applies an incoming MultiSelection change. Exceeding
// maxSelections rejects the change and returns the prior selection
// untouched; it never truncates.
func ApplySelection(current, incoming []string, props QuestionProps) ([]string, error) {
	if props.MaxSelections > 0 && len(incoming) > props.MaxSelections {
		return current, fmt.Errorf("%w: %d > %d", ErrTooManySelections, len(incoming), props.MaxSelections)
	}
	return incoming, nil
}

// ValidateSelectionCount checks min/max at submission time.
func ValidateSelectionCount(selected []string, props QuestionProps) error {
	if props.MaxSelections > 0 && len(selected) > props.MaxSelections {
		return fmt.Errorf("%w: %d > %d", ErrTooManySelections, len(selected), props.MaxSelections)
	}
	if props.MinSelections > 0 && len(selected) < props.MinSelections {
		return fmt.Errorf("%w: %d < %d", ErrTooFewSelections, len(selected), props.MinSelections)
	}
	return nil
}

// ScaleIndexToLabel resolves a 1-based stored index to its label.
func ScaleIndexToLabel(options []string, index int) (string, error) {
	if index < 1 || index > len(options) {
		return "", fmt.Errorf("scale index %d out of range [1, %d]", index, len(options))
	}
	return options[index-1], nil
}

// ScaleLabelToIndex is the inverse of ScaleIndexToLabel.
func ScaleLabelToIndex(options []string, label string) (int, error) {
	for i, opt := range options {
		if opt == label {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("scale label %q not among options", label)
}
