package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/onboarding"
	"github.com/verdantmarket/verdant-backend/internal/repos"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

// StageEntry is the payload handed back when a respondent enters a
// stage: the catalog row, the respondent's current status, and the
// stage-specific extras (contract state, payment link).
type StageEntry struct {
	Stage          *types.OnboardingStage `json:"stage"`
	Status         onboarding.Status      `json:"status"`
	ContractSigned bool                   `json:"contract_signed,omitempty"`
	PaymentLink    string                 `json:"payment_link,omitempty"`
}

// OnboardingService drives respondents through the stage machine.
type OnboardingService interface {
	ListStages(ctx context.Context) ([]*types.OnboardingStage, error)
	GetProgress(ctx context.Context, userID uuid.UUID) ([]*types.UserOnboardingProgress, error)
	StageAccessible(ctx context.Context, userID uuid.UUID, role string, debugAccess bool, stageID int) (bool, error)
	EnterStage(ctx context.Context, userID uuid.UUID, role string, debugAccess bool, stageID int) (*StageEntry, error)
	AcceptContract(ctx context.Context, userID uuid.UUID, role string, debugAccess bool, stageID int, signedName string) error
	CompleteStage(ctx context.Context, userID uuid.UUID, role string, debugAccess bool, stageID int) error
	SetStageStatus(ctx context.Context, userID uuid.UUID, stageID int, status string) error
	PaymentLink(ctx context.Context, userID uuid.UUID) (string, error)
}

type onboardingService struct {
	db            *gorm.DB
	log           *logger.Logger
	stageRepo     repos.StageRepo
	progressRepo  repos.ProgressRepo
	profileRepo   repos.ProfileRepo
	signatureRepo repos.ContractSignatureRepo
	emailSvc      EmailService
	orders        onboarding.WorkflowOrders
	paymentLink   string
	trialLink     string
}

func NewOnboardingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	stageRepo repos.StageRepo,
	progressRepo repos.ProgressRepo,
	profileRepo repos.ProfileRepo,
	signatureRepo repos.ContractSignatureRepo,
	emailSvc EmailService,
	orders onboarding.WorkflowOrders,
	paymentLink, trialLink string,
) OnboardingService {
	return &onboardingService{
		db:            db,
		log:           baseLog.With("service", "OnboardingService"),
		stageRepo:     stageRepo,
		progressRepo:  progressRepo,
		profileRepo:   profileRepo,
		signatureRepo: signatureRepo,
		emailSvc:      emailSvc,
		orders:        orders,
		paymentLink:   paymentLink,
		trialLink:     trialLink,
	}
}

func (os *onboardingService) ListStages(ctx context.Context) ([]*types.OnboardingStage, error) {
	return os.stageRepo.ListAll(ctx, nil)
}

func (os *onboardingService) GetProgress(ctx context.Context, userID uuid.UUID) ([]*types.UserOnboardingProgress, error) {
	return os.progressRepo.GetByUser(ctx, nil, userID)
}

func (os *onboardingService) progressMap(ctx context.Context, userID uuid.UUID) (map[int]onboarding.Status, error) {
	rows, err := os.progressRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	m := make(map[int]onboarding.Status, len(rows))
	for _, row := range rows {
		m[row.StageID] = onboarding.Status(row.Status)
	}
	return m, nil
}

func (os *onboardingService) StageAccessible(ctx context.Context, userID uuid.UUID, role string, debugAccess bool, stageID int) (bool, error) {
	progress, err := os.progressMap(ctx, userID)
	if err != nil {
		return false, err
	}
	return onboarding.Accessible(stageID, role, progress, os.orders, debugAccess), nil
}

// EnterStage gates on accessibility, then applies the stage's entry
// behavior. Tool-preferences flips to in_progress unconditionally, so
// re-entering a completed preferences stage reopens it; every other
// stage just materializes its not_started row (the KYC questionnaire
// moves to in_progress on its first answer save, not on entry).
func (os *onboardingService) EnterStage(ctx context.Context, userID uuid.UUID, role string, debugAccess bool, stageID int) (*StageEntry, error) {
	stage, err := os.stageRepo.GetByID(ctx, nil, stageID)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, fmt.Errorf("%w: %d", ErrStageNotFound, stageID)
	}

	accessible, err := os.StageAccessible(ctx, userID, role, debugAccess, stageID)
	if err != nil {
		return nil, err
	}
	if !accessible {
		return nil, fmt.Errorf("%w: stage %d for role %q", ErrStageLocked, stageID, role)
	}

	switch stageID {
	case onboarding.StageToolPreferences:
		if err := os.progressRepo.UpsertStatus(ctx, nil, userID, stageID, string(onboarding.StatusInProgress)); err != nil {
			return nil, err
		}
	default:
		if err := os.progressRepo.CreateIfAbsent(ctx, nil, userID, stageID, string(onboarding.StatusNotStarted)); err != nil {
			return nil, err
		}
	}

	row, err := os.progressRepo.GetByUserAndStage(ctx, nil, userID, stageID)
	if err != nil {
		return nil, err
	}
	entry := &StageEntry{Stage: stage, Status: onboarding.StatusNotStarted}
	if row != nil {
		entry.Status = onboarding.Status(row.Status)
	}

	switch stageID {
	case onboarding.StageContract:
		sig, err := os.signatureRepo.GetByUserAndStage(ctx, nil, userID, stageID)
		if err != nil {
			return nil, err
		}
		entry.ContractSigned = sig != nil
	case onboarding.StagePayment:
		link, err := os.PaymentLink(ctx, userID)
		if err != nil {
			return nil, err
		}
		entry.PaymentLink = link
	}
	return entry, nil
}

// requireAccessible applies the same gate as EnterStage to the
// completion transitions, so a respondent cannot finish a stage they
// could not reach.
func (os *onboardingService) requireAccessible(ctx context.Context, userID uuid.UUID, role string, debugAccess bool, stageID int) error {
	if !os.orders.Contains(role, stageID) {
		return fmt.Errorf("%w: %d", ErrStageNotFound, stageID)
	}
	accessible, err := os.StageAccessible(ctx, userID, role, debugAccess, stageID)
	if err != nil {
		return err
	}
	if !accessible {
		return fmt.Errorf("%w: stage %d for role %q", ErrStageLocked, stageID, role)
	}
	return nil
}

// AcceptContract records the signature, completes the stage, and
// unlocks the next one. The completion write and the next-stage insert
// are two sequential statements, not a transaction; if the second one
// is lost the accessibility rule still lets the respondent through
// because the contract stage reads completed.
func (os *onboardingService) AcceptContract(ctx context.Context, userID uuid.UUID, role string, debugAccess bool, stageID int, signedName string) error {
	if err := os.requireAccessible(ctx, userID, role, debugAccess, stageID); err != nil {
		return err
	}

	existing, err := os.signatureRepo.GetByUserAndStage(ctx, nil, userID, stageID)
	if err != nil {
		return err
	}
	if existing == nil {
		_, err = os.signatureRepo.Create(ctx, nil, &types.ContractSignature{
			UUID:       userID,
			StageID:    stageID,
			SignedName: signedName,
			SignedAt:   time.Now(),
		})
		if err != nil {
			return fmt.Errorf("record signature: %w", err)
		}
	}

	if err := os.progressRepo.UpsertStatus(ctx, nil, userID, stageID, string(onboarding.StatusCompleted)); err != nil {
		return fmt.Errorf("complete contract stage: %w", err)
	}
	if err := os.unlockNext(ctx, userID, role, stageID); err != nil {
		return err
	}

	os.notifyCompletion(ctx, userID, stageID)
	return nil
}

// unlockNext materializes the next stage's not_started row after a
// completion; finishing the last stage of the role's order marks the
// profile onboarded instead.
func (os *onboardingService) unlockNext(ctx context.Context, userID uuid.UUID, role string, stageID int) error {
	next, ok := os.orders.NextStage(role, stageID)
	if !ok {
		if err := os.profileRepo.SetStatus(ctx, nil, userID, types.ProfileStatusOnboarded); err != nil {
			os.log.Warn("profile status update failed", "error", err, "user_id", userID)
		}
		return nil
	}
	if err := os.progressRepo.CreateIfAbsent(ctx, nil, userID, next, string(onboarding.StatusNotStarted)); err != nil {
		return fmt.Errorf("unlock next stage: %w", err)
	}
	return nil
}

// CompleteStage is the explicit finish action for stages without their
// own transition trigger (document upload in particular).
func (os *onboardingService) CompleteStage(ctx context.Context, userID uuid.UUID, role string, debugAccess bool, stageID int) error {
	if err := os.requireAccessible(ctx, userID, role, debugAccess, stageID); err != nil {
		return err
	}
	if err := os.progressRepo.UpsertStatus(ctx, nil, userID, stageID, string(onboarding.StatusCompleted)); err != nil {
		return err
	}
	if err := os.unlockNext(ctx, userID, role, stageID); err != nil {
		return err
	}
	os.notifyCompletion(ctx, userID, stageID)
	return nil
}

// SetStageStatus is the admin override; any valid status may be
// written over any current one.
func (os *onboardingService) SetStageStatus(ctx context.Context, userID uuid.UUID, stageID int, status string) error {
	if !onboarding.ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	stage, err := os.stageRepo.GetByID(ctx, nil, stageID)
	if err != nil {
		return err
	}
	if stage == nil {
		return fmt.Errorf("%w: %d", ErrStageNotFound, stageID)
	}
	return os.progressRepo.UpsertStatus(ctx, nil, userID, stageID, status)
}

// PaymentLink returns the external checkout URL, swapping in the $0
// trial link for trial-enabled profiles.
func (os *onboardingService) PaymentLink(ctx context.Context, userID uuid.UUID) (string, error) {
	profile, err := os.profileRepo.GetByUUID(ctx, nil, userID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
	}
	if profile.IsTrialEnabled && os.trialLink != "" {
		return os.trialLink, nil
	}
	return os.paymentLink, nil
}

// notifyCompletion sends the completion email best-effort; a mail
// failure never rolls back a stage transition.
func (os *onboardingService) notifyCompletion(ctx context.Context, userID uuid.UUID, stageID int) {
	profile, err := os.profileRepo.GetByUUID(ctx, nil, userID)
	if err != nil || profile == nil || profile.Email == "" {
		return
	}
	label := fmt.Sprintf("stage %d", stageID)
	if stage, err := os.stageRepo.GetByID(ctx, nil, stageID); err == nil && stage != nil && stage.Label != "" {
		label = stage.Label
	}
	if err := os.emailSvc.SendStageCompletionEmail(ctx, profile.Email, "", label); err != nil {
		os.log.Warn("stage completion email failed", "error", err, "user_id", userID, "stage_id", stageID)
	}
}
