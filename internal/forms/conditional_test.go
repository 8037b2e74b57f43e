package forms

import "testing"

func TestEvaluateConditionOperators(t *testing.T) {
	doc := AnswerDocument{
		"role":      "seller",
		"offerings": []any{"solar", "wind"},
	}
	cases := []struct {
		name string
		cond *ConditionalDisplay
		want bool
	}{
		{"nil rule shows", nil, true},
		{"equals match", &ConditionalDisplay{QuestionAlias: "role", Operator: OperatorEquals, ExpectedValue: "seller"}, true},
		{"equals miss", &ConditionalDisplay{QuestionAlias: "role", Operator: OperatorEquals, ExpectedValue: "buyer"}, false},
		{"not_equals", &ConditionalDisplay{QuestionAlias: "role", Operator: OperatorNotEquals, ExpectedValue: "buyer"}, true},
		{"contains list hit", &ConditionalDisplay{QuestionAlias: "offerings", Operator: OperatorContains, ExpectedValue: "wind"}, true},
		{"contains list miss", &ConditionalDisplay{QuestionAlias: "offerings", Operator: OperatorContains, ExpectedValue: "storage"}, false},
		{"contains substring", &ConditionalDisplay{QuestionAlias: "role", Operator: OperatorContains, ExpectedValue: "sell"}, true},
		{"unknown operator fails open", &ConditionalDisplay{QuestionAlias: "role", Operator: "matches", ExpectedValue: "x"}, true},
		{"missing alias equals", &ConditionalDisplay{QuestionAlias: "gone", Operator: OperatorEquals, ExpectedValue: "x"}, false},
	}
	for _, tc := range cases {
		if got := EvaluateCondition(tc.cond, doc); got != tc.want {
			t.Fatalf("%s: want=%v got=%v", tc.name, tc.want, got)
		}
	}
}

func TestVisibleSections(t *testing.T) {
	sections := []Section{
		{ID: 1, Name: "Always"},
		{ID: 2, Name: "Sellers only", ConditionalDisplay: &ConditionalDisplay{
			QuestionAlias: "role", Operator: OperatorEquals, ExpectedValue: "seller",
		}},
	}
	got := VisibleSections(sections, AnswerDocument{"role": "buyer"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("visible: want=[1] got=%+v", got)
	}
}
