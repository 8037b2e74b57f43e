package onboarding

import "testing"

func TestAccessibleFirstStageAlways(t *testing.T) {
	orders := DefaultWorkflowOrders()
	for _, role := range []string{"seller", "buyer", "ally"} {
		if !Accessible(StageKYC, role, map[int]Status{}, orders, false) {
			t.Fatalf("role %s: stage 1 must always be accessible", role)
		}
	}
}

func TestAccessibleRequiresCompletedPredecessor(t *testing.T) {
	orders := DefaultWorkflowOrders()

	if Accessible(StageContract, "seller", map[int]Status{}, orders, false) {
		t.Fatalf("contract stage accessible with no progress")
	}
	if Accessible(StageContract, "seller", map[int]Status{StageKYC: StatusInProgress}, orders, false) {
		t.Fatalf("contract stage accessible with in_progress predecessor")
	}
	if !Accessible(StageContract, "seller", map[int]Status{StageKYC: StatusCompleted}, orders, false) {
		t.Fatalf("contract stage inaccessible with completed predecessor")
	}
}

func TestAccessibleExistingRowSuffices(t *testing.T) {
	orders := DefaultWorkflowOrders()
	progress := map[int]Status{StagePayment: StatusNotStarted}
	if !Accessible(StagePayment, "seller", progress, orders, false) {
		t.Fatalf("stage with existing progress row must be accessible")
	}
}

func TestAccessibleDebugAccessBypassesAll(t *testing.T) {
	orders := DefaultWorkflowOrders()
	if !Accessible(StageToolPreferences, "buyer", map[int]Status{}, orders, true) {
		t.Fatalf("debug access must bypass ordering and role membership")
	}
}

func TestAccessibleStageOutsideRoleOrder(t *testing.T) {
	orders := DefaultWorkflowOrders()
	// Buyers never reach the documents stage.
	if Accessible(StageDocuments, "buyer", map[int]Status{StagePayment: StatusCompleted}, orders, false) {
		t.Fatalf("stage outside role order must be inaccessible")
	}
}

func TestNextStagePerRole(t *testing.T) {
	orders := DefaultWorkflowOrders()

	next, ok := orders.NextStage("seller", StageContract)
	if !ok || next != StagePayment {
		t.Fatalf("seller after contract: want=(3, true) got=(%d, %v)", next, ok)
	}
	next, ok = orders.NextStage("ally", StageKYC)
	if !ok || next != StageToolPreferences {
		t.Fatalf("ally after kyc: want=(5, true) got=(%d, %v)", next, ok)
	}
	if _, ok := orders.NextStage("buyer", StagePayment); ok {
		t.Fatalf("last stage must have no successor")
	}
	if _, ok := orders.NextStage("seller", 99); ok {
		t.Fatalf("unknown stage must have no successor")
	}
}

func TestSellerEndToEndProgression(t *testing.T) {
	orders := DefaultWorkflowOrders()
	progress := map[int]Status{}

	// New seller: only stage 1 accessible.
	for _, id := range orders.Order("seller")[1:] {
		if Accessible(id, "seller", progress, orders, false) {
			t.Fatalf("stage %d accessible for new seller", id)
		}
	}

	progress[StageKYC] = StatusCompleted
	if !Accessible(StageContract, "seller", progress, orders, false) {
		t.Fatalf("stage 2 must unlock after stage 1 completes")
	}
	if Accessible(StagePayment, "seller", progress, orders, false) {
		t.Fatalf("stage 3 must stay locked until stage 2 completes")
	}
}

func TestLoadWorkflowConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWorkflowConfig("/nonexistent/stages.yaml")
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(cfg.Stages) != len(DefaultStageCatalog()) {
		t.Fatalf("stages: want defaults got=%d", len(cfg.Stages))
	}
	if len(cfg.Orders["seller"]) == 0 {
		t.Fatalf("orders: want defaults got none")
	}
}
