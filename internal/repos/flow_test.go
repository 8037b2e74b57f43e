package repos

import (
	"context"
	"strings"
	"testing"

	"gorm.io/datatypes"

	"github.com/verdantmarket/verdant-backend/internal/repos/testutil"
)

func TestFlowRepoUpsertData(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewFlowRepo(db, testutil.Logger(t))

	if err := repo.UpsertData(ctx, tx, "kyc_seller", datatypes.JSON([]byte(`{"sections":[]}`))); err != nil {
		t.Fatalf("UpsertData insert: %v", err)
	}
	flow, err := repo.GetByFlowName(ctx, tx, "kyc_seller")
	if err != nil || flow == nil {
		t.Fatalf("GetByFlowName: err=%v flow=%v", err, flow)
	}

	updated := `{"sections":[{"id":1,"name":"Basics","order":1,"steps":[]}]}`
	if err := repo.UpsertData(ctx, tx, "kyc_seller", datatypes.JSON([]byte(updated))); err != nil {
		t.Fatalf("UpsertData overwrite: %v", err)
	}
	flow, err = repo.GetByFlowName(ctx, tx, "kyc_seller")
	if err != nil || flow == nil {
		t.Fatalf("GetByFlowName after overwrite: err=%v", err)
	}
	if !strings.Contains(string(flow.Data), "Basics") {
		t.Fatalf("data not overwritten: %s", flow.Data)
	}
}

func TestFlowRepoGetMissingFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewFlowRepo(db, testutil.Logger(t))
	flow, err := repo.GetByFlowName(context.Background(), tx, "nope")
	if err != nil {
		t.Fatalf("GetByFlowName: %v", err)
	}
	if flow != nil {
		t.Fatalf("missing flow: want=nil got=%+v", flow)
	}
}
