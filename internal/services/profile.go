package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/aggregate"
	"github.com/verdantmarket/verdant-backend/internal/forms"
	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/repos"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

// ProfileService owns respondent records, their intake blobs, and the
// merged aggregate view review tooling reads from.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	CreateProfile(ctx context.Context, userID uuid.UUID, role, email string) (*types.Profile, error)
	SaveSellerIntake(ctx context.Context, userID uuid.UUID, data datatypes.JSON) error
	SaveRealEstateIntake(ctx context.Context, userID uuid.UUID, data datatypes.JSON) error
	AggregateView(ctx context.Context, userID uuid.UUID) (map[string]any, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.ProfileRepo
	intakeRepo  repos.IntakeRepo
}

func NewProfileService(db *gorm.DB, baseLog *logger.Logger, profileRepo repos.ProfileRepo, intakeRepo repos.IntakeRepo) ProfileService {
	return &profileService{
		db:          db,
		log:         baseLog.With("service", "ProfileService"),
		profileRepo: profileRepo,
		intakeRepo:  intakeRepo,
	}
}

func (ps *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	profile, err := ps.profileRepo.GetByUUID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
	}
	return profile, nil
}

func (ps *profileService) CreateProfile(ctx context.Context, userID uuid.UUID, role, email string) (*types.Profile, error) {
	switch role {
	case types.RoleBuyer, types.RoleSeller, types.RoleAlly:
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
	return ps.profileRepo.Create(ctx, nil, &types.Profile{
		UUID:   userID,
		Role:   role,
		Status: types.ProfileStatusActive,
		Email:  email,
		Data:   datatypes.JSON([]byte("{}")),
	})
}

func (ps *profileService) SaveSellerIntake(ctx context.Context, userID uuid.UUID, data datatypes.JSON) error {
	return ps.intakeRepo.UpsertSellerIntake(ctx, nil, userID, data)
}

func (ps *profileService) SaveRealEstateIntake(ctx context.Context, userID uuid.UUID, data datatypes.JSON) error {
	return ps.intakeRepo.UpsertRealEstateIntake(ctx, nil, userID, data)
}

// AggregateView merges the intake blobs with the questionnaire answer
// document, intakes first so later questionnaire answers win scalar
// conflicts.
func (ps *profileService) AggregateView(ctx context.Context, userID uuid.UUID) (map[string]any, error) {
	profile, err := ps.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var docs []map[string]any
	if intake, err := ps.intakeRepo.GetSellerIntake(ctx, nil, userID); err != nil {
		return nil, err
	} else if intake != nil {
		parsed, err := forms.ParseAnswers(intake.Data)
		if err != nil {
			return nil, fmt.Errorf("seller intake: %w", err)
		}
		docs = append(docs, parsed)
	}
	if intake, err := ps.intakeRepo.GetRealEstateIntake(ctx, nil, userID); err != nil {
		return nil, err
	} else if intake != nil {
		parsed, err := forms.ParseAnswers(intake.Data)
		if err != nil {
			return nil, fmt.Errorf("real estate intake: %w", err)
		}
		docs = append(docs, parsed)
	}
	answers, err := forms.ParseAnswers(profile.Data)
	if err != nil {
		return nil, err
	}
	docs = append(docs, answers)

	return aggregate.Merge(docs...), nil
}
