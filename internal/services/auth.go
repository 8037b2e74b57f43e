package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/repos"
	"github.com/verdantmarket/verdant-backend/internal/requestdata"
)

// AuthService verifies bearer tokens minted by the hosted auth
// provider and loads the matching profile into request context.
// Token issuance is not this service's job; MintToken exists for
// development and tests only.
type AuthService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	MintToken(userID uuid.UUID, role string, isAdmin bool, ttl time.Duration) (string, error)
}

type authService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.ProfileRepo
	secretKey   []byte
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, profileRepo repos.ProfileRepo, secretKey string) AuthService {
	return &authService{
		db:          db,
		log:         baseLog.With("service", "AuthService"),
		profileRepo: profileRepo,
		secretKey:   []byte(secretKey),
	}
}

type authClaims struct {
	Role    string `json:"role,omitempty"`
	IsAdmin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	var claims authClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return as.secretKey, nil
	})
	if err != nil {
		return ctx, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("token subject is not a uuid: %w", err)
	}

	rd := &requestdata.RequestData{
		UserID:  userID,
		Role:    claims.Role,
		IsAdmin: claims.IsAdmin,
	}

	// The debug flag lives on the profile row, not in the token, so
	// flipping it takes effect without re-issuing tokens.
	profile, err := as.profileRepo.GetByUUID(ctx, nil, userID)
	if err != nil {
		as.log.Warn("failed to load profile for token", "error", err, "user_id", userID)
	} else if profile != nil {
		if rd.Role == "" {
			rd.Role = profile.Role
		}
		rd.DebugAccess = profile.DebugAccess
	}

	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) MintToken(userID uuid.UUID, role string, isAdmin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := authClaims{
		Role:    role,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
