package services

import (
	"context"
	"errors"
	"testing"

	"github.com/verdantmarket/verdant-backend/internal/forms"
	"github.com/verdantmarket/verdant-backend/internal/repos"
	"github.com/verdantmarket/verdant-backend/internal/repos/testutil"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

const answersFlowDoc = `{
  "sections": [
    {
      "id": 1,
      "name": "Basics",
      "order": 1,
      "steps": [
        {
          "id": 10,
          "order": 1,
          "questions": [
            {
              "type": "SingleSelection",
              "alias": "sector",
              "props": {"label": "Sector", "options": ["Solar", "Wind", "Storage"], "otherOption": true}
            },
            {
              "type": "MultiSelection",
              "alias": "certifications",
              "props": {"label": "Certifications", "options": ["B-Corp", "ISO-14001", "LEED"], "maxSelections": 2}
            },
            {
              "type": "SingleSelection",
              "alias": "legalEntity",
              "editable": false,
              "props": {"label": "Legal entity", "options": ["LLC", "Inc"]}
            }
          ]
        }
      ]
    },
    {
      "id": 2,
      "name": "Wind details",
      "order": 2,
      "conditionalDisplay": {"questionAlias": "sector", "operator": "equals", "expectedValue": "Wind"},
      "steps": []
    }
  ]
}`

func newAnswerFixture(t *testing.T) (AnswerService, *types.Profile, repos.ProfileRepo, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	testutil.SeedFlow(t, ctx, tx, "seller_onboarding", answersFlowDoc)
	profile := testutil.SeedProfile(t, ctx, tx, types.RoleSeller)

	profileRepo := repos.NewProfileRepo(tx, log)
	schemaSvc := NewSchemaService(tx, log, repos.NewFlowRepo(tx, log), nil)
	svc := NewAnswerService(tx, log, profileRepo, repos.NewProgressRepo(tx, log), schemaSvc)
	return svc, profile, profileRepo, ctx
}

func TestSaveAnswersAndRenderForm(t *testing.T) {
	svc, profile, _, ctx := newAnswerFixture(t)

	err := svc.SaveAnswers(ctx, profile.UUID, "seller_onboarding", map[string]any{
		"sector":              "Wind",
		"certifications":      []any{"B-Corp", "Community Solar Pioneer"},
		"detailForm.headline": "Offshore wind maintenance",
	})
	if err != nil {
		t.Fatalf("SaveAnswers: %v", err)
	}

	form, err := svc.GetForm(ctx, profile.UUID, "seller_onboarding")
	if err != nil {
		t.Fatalf("GetForm: %v", err)
	}
	// sector=Wind satisfies the conditional section.
	if len(form.Sections) != 2 {
		t.Fatalf("visible sections: want=2 got=%d", len(form.Sections))
	}

	var multi *forms.RenderedInput
	for i := range form.Sections[0].Steps[0].Inputs {
		if form.Sections[0].Steps[0].Inputs[i].Alias == "certifications" {
			multi = &form.Sections[0].Steps[0].Inputs[i]
		}
	}
	if multi == nil {
		t.Fatal("certifications input missing from rendered form")
	}
	if !multi.OtherSelected || multi.OtherText != "Community Solar Pioneer" {
		t.Fatalf("custom entry should surface as other text, got %+v", multi)
	}
}

func TestSaveAnswersConditionalSectionHidden(t *testing.T) {
	svc, profile, _, ctx := newAnswerFixture(t)

	if err := svc.SaveAnswer(ctx, profile.UUID, "seller_onboarding", "sector", "Solar"); err != nil {
		t.Fatalf("SaveAnswer: %v", err)
	}
	form, err := svc.GetForm(ctx, profile.UUID, "seller_onboarding")
	if err != nil {
		t.Fatalf("GetForm: %v", err)
	}
	if len(form.Sections) != 1 {
		t.Fatalf("visible sections: want=1 got=%d", len(form.Sections))
	}
}

func TestSaveAnswersRejectsOverMaxWithoutWrite(t *testing.T) {
	svc, profile, profileRepo, ctx := newAnswerFixture(t)

	if err := svc.SaveAnswer(ctx, profile.UUID, "seller_onboarding", "certifications", []any{"B-Corp"}); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	err := svc.SaveAnswer(ctx, profile.UUID, "seller_onboarding", "certifications", []any{"B-Corp", "ISO-14001", "LEED"})
	if !errors.Is(err, forms.ErrTooManySelections) {
		t.Fatalf("want ErrTooManySelections, got %v", err)
	}

	stored, err := profileRepo.GetByUUID(ctx, nil, profile.UUID)
	if err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	doc, err := forms.ParseAnswers(stored.Data)
	if err != nil {
		t.Fatalf("parse answers: %v", err)
	}
	raw, _ := doc.Get("certifications")
	if got := forms.StringSlice(raw); len(got) != 1 || got[0] != "B-Corp" {
		t.Fatalf("rejected save must leave prior value, got %v", got)
	}
}

func TestFirstAnswerSaveStartsKYC(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	testutil.SeedFlow(t, ctx, tx, "seller_onboarding", answersFlowDoc)
	profile := testutil.SeedProfile(t, ctx, tx, types.RoleSeller)

	progressRepo := repos.NewProgressRepo(tx, log)
	schemaSvc := NewSchemaService(tx, log, repos.NewFlowRepo(tx, log), nil)
	svc := NewAnswerService(tx, log, repos.NewProfileRepo(tx, log), progressRepo, schemaSvc)

	if err := svc.SaveAnswer(ctx, profile.UUID, "seller_onboarding", "sector", "Storage"); err != nil {
		t.Fatalf("SaveAnswer: %v", err)
	}

	row, err := progressRepo.GetByUserAndStage(ctx, nil, profile.UUID, 1)
	if err != nil {
		t.Fatalf("load kyc progress: %v", err)
	}
	if row == nil || row.Status != "in_progress" {
		t.Fatalf("kyc should be in_progress after first save, got %+v", row)
	}

	// A later save must not downgrade a reviewed stage.
	if err := progressRepo.UpsertStatus(ctx, nil, profile.UUID, 1, "completed"); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if err := svc.SaveAnswer(ctx, profile.UUID, "seller_onboarding", "sector", "Wind"); err != nil {
		t.Fatalf("second SaveAnswer: %v", err)
	}
	row, err = progressRepo.GetByUserAndStage(ctx, nil, profile.UUID, 1)
	if err != nil {
		t.Fatalf("reload kyc progress: %v", err)
	}
	if row.Status != "completed" {
		t.Fatalf("completed stage must stay completed, got %q", row.Status)
	}
}

func TestSaveAnswersRefusesNonEditable(t *testing.T) {
	svc, profile, _, ctx := newAnswerFixture(t)

	err := svc.SaveAnswer(ctx, profile.UUID, "seller_onboarding", "legalEntity", "Inc")
	if !errors.Is(err, ErrNotEditable) {
		t.Fatalf("want ErrNotEditable, got %v", err)
	}
}

func TestSaveAnswersNestedPathKeepsSiblings(t *testing.T) {
	svc, profile, profileRepo, ctx := newAnswerFixture(t)

	if err := svc.SaveAnswer(ctx, profile.UUID, "seller_onboarding", "detailForm.city", "Rotterdam"); err != nil {
		t.Fatalf("first nested save: %v", err)
	}
	if err := svc.SaveAnswer(ctx, profile.UUID, "seller_onboarding", "detailForm.country", "Netherlands"); err != nil {
		t.Fatalf("second nested save: %v", err)
	}

	stored, err := profileRepo.GetByUUID(ctx, nil, profile.UUID)
	if err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	doc, err := forms.ParseAnswers(stored.Data)
	if err != nil {
		t.Fatalf("parse answers: %v", err)
	}
	city, _ := doc.Get("detailForm.city")
	country, _ := doc.Get("detailForm.country")
	if forms.StringValue(city) != "Rotterdam" || forms.StringValue(country) != "Netherlands" {
		t.Fatalf("nested writes clobbered siblings: city=%v country=%v", city, country)
	}
}
