package services

import (
	"context"
	"errors"
	"testing"

	"github.com/verdantmarket/verdant-backend/internal/forms"
	"github.com/verdantmarket/verdant-backend/internal/repos"
	"github.com/verdantmarket/verdant-backend/internal/repos/testutil"
)

const sellerFlowDoc = `{
  "sections": [
    {
      "id": 1,
      "name": "Company",
      "order": 1,
      "steps": [
        {
          "id": 10,
          "order": 1,
          "questions": [
            {
              "type": "SingleSelection",
              "alias": "companyStage",
              "props": {"label": "Company stage", "options": ["Pre-seed", "Seed", "Series A"], "otherOption": true}
            }
          ]
        }
      ]
    },
    {
      "id": 2,
      "name": "Impact",
      "order": 2,
      "steps": []
    }
  ]
}`

func TestSchemaServiceSaveAndLoad(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	testutil.SeedFlow(t, ctx, tx, "seller_onboarding", sellerFlowDoc)

	svc := NewSchemaService(tx, log, repos.NewFlowRepo(tx, log), nil)

	sections, err := svc.LoadSections(ctx, "seller_onboarding")
	if err != nil {
		t.Fatalf("LoadSections: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("sections: want=2 got=%d", len(sections))
	}

	diff := forms.SectionsDiff{
		Modified:   []forms.Section{{ID: 2, Name: "Climate Impact"}},
		DeletedIDs: []int64{1},
	}
	saved, err := svc.SaveSections(ctx, "seller_onboarding", diff)
	if err != nil {
		t.Fatalf("SaveSections: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("sections after diff: want=1 got=%d", len(saved))
	}
	if saved[0].ID != 2 || saved[0].Name != "Climate Impact" {
		t.Fatalf("merged section: got id=%d name=%q", saved[0].ID, saved[0].Name)
	}

	// The save must round-trip through the stored document.
	reloaded, err := svc.LoadSections(ctx, "seller_onboarding")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded) != 1 || reloaded[0].Name != "Climate Impact" {
		t.Fatalf("reloaded sections: got %+v", reloaded)
	}
}

func TestSchemaServiceMissingFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	svc := NewSchemaService(tx, log, repos.NewFlowRepo(tx, log), nil)
	if _, err := svc.LoadSections(ctx, "no_such_flow"); !errors.Is(err, ErrFlowNotFound) {
		t.Fatalf("want ErrFlowNotFound, got %v", err)
	}
}

func TestSchemaServiceSaveCreatesFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	svc := NewSchemaService(tx, log, repos.NewFlowRepo(tx, log), nil)
	saved, err := svc.SaveSections(ctx, "brand_new_flow", forms.SectionsDiff{
		Modified: []forms.Section{{ID: 7, Name: "Basics", Order: 1}},
	})
	if err != nil {
		t.Fatalf("SaveSections on empty flow: %v", err)
	}
	if len(saved) != 1 || saved[0].ID != 7 {
		t.Fatalf("new flow sections: got %+v", saved)
	}
}
