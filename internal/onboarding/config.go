package onboarding

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StageDef is one catalog row in the stages.yaml seed file.
type StageDef struct {
	StageID   int    `yaml:"stage_id"`
	StageName string `yaml:"stage_name"`
	Label     string `yaml:"label"`
	Route     string `yaml:"route"`
	Order     int    `yaml:"order"`
}

// WorkflowConfig is the parsed stages.yaml: the stage catalog plus
// the per-role orderings.
type WorkflowConfig struct {
	Stages []StageDef       `yaml:"stages"`
	Orders map[string][]int `yaml:"workflow_orders"`
}

// DefaultStageCatalog mirrors DefaultWorkflowOrders for boots without
// a seed file.
func DefaultStageCatalog() []StageDef {
	return []StageDef{
		{StageID: StageKYC, StageName: "kyc", Label: "Know Your Customer", Route: "/onboarding/kyc", Order: 1},
		{StageID: StageContract, StageName: "contract", Label: "Contract Signing", Route: "/onboarding/contract", Order: 2},
		{StageID: StagePayment, StageName: "payment", Label: "Payment", Route: "/onboarding/payment", Order: 3},
		{StageID: StageDocuments, StageName: "documents", Label: "Document Upload", Route: "/onboarding/documents", Order: 4},
		{StageID: StageToolPreferences, StageName: "tool_preferences", Label: "Tool Preferences", Route: "/onboarding/tools", Order: 5},
	}
}

// LoadWorkflowConfig reads a stages.yaml seed. A missing path falls
// back to the compiled-in defaults; a malformed file is an error.
func LoadWorkflowConfig(path string) (WorkflowConfig, error) {
	cfg := WorkflowConfig{
		Stages: DefaultStageCatalog(),
		Orders: DefaultWorkflowOrders(),
	}
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read workflow config: %w", err)
	}
	var parsed WorkflowConfig
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return cfg, fmt.Errorf("parse workflow config: %w", err)
	}
	if len(parsed.Stages) > 0 {
		cfg.Stages = parsed.Stages
	}
	if len(parsed.Orders) > 0 {
		cfg.Orders = parsed.Orders
	}
	return cfg, nil
}
