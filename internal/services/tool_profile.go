package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/repos"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

// ToolProfileService is the password-gated tool directory: listings
// are public, the detail payload unlocks only with the entry's
// password.
type ToolProfileService interface {
	List(ctx context.Context, profileType string) ([]*types.ToolProfile, error)
	Unlock(ctx context.Context, id uuid.UUID, password string) (*types.ToolProfile, error)
	Create(ctx context.Context, name, profileType string, data datatypes.JSON, password string) (*types.ToolProfile, error)
}

type toolProfileService struct {
	db       *gorm.DB
	log      *logger.Logger
	toolRepo repos.ToolProfileRepo
}

func NewToolProfileService(db *gorm.DB, baseLog *logger.Logger, toolRepo repos.ToolProfileRepo) ToolProfileService {
	return &toolProfileService{
		db:       db,
		log:      baseLog.With("service", "ToolProfileService"),
		toolRepo: toolRepo,
	}
}

func (ts *toolProfileService) List(ctx context.Context, profileType string) ([]*types.ToolProfile, error) {
	switch profileType {
	case types.ToolProfileTypeSeller, types.ToolProfileTypeAlly:
	default:
		return nil, fmt.Errorf("unknown tool profile type %q", profileType)
	}
	return ts.toolRepo.ListByType(ctx, nil, profileType)
}

func (ts *toolProfileService) Unlock(ctx context.Context, id uuid.UUID, password string) (*types.ToolProfile, error) {
	profile, err := ts.toolRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("tool profile %s not found", id)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("verify password: %w", err)
	}
	return profile, nil
}

func (ts *toolProfileService) Create(ctx context.Context, name, profileType string, data datatypes.JSON, password string) (*types.ToolProfile, error) {
	switch profileType {
	case types.ToolProfileTypeSeller, types.ToolProfileTypeAlly:
	default:
		return nil, fmt.Errorf("unknown tool profile type %q", profileType)
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return ts.toolRepo.Create(ctx, nil, &types.ToolProfile{
		Name:     name,
		Type:     profileType,
		Data:     data,
		Password: string(hash),
	})
}
