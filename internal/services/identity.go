package services

//go:generate mockgen -source=identity.go -destination=mock_identity.go -package=services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/filmtrack/internal/logger"
	"github.com/sbilibin2017/filmtrack/internal/models"
)

// UserGetter loads a user by ID.
type UserGetter interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// RevocationChecker reports whether a token ID has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// IdentityService resolves a bearer token to the persisted user it was issued for.
type IdentityService struct {
	parser  JWTParser
	revoked RevocationChecker
	users   UserGetter
}

// NewIdentityService creates a new IdentityService. revoked may be nil.
func NewIdentityService(parser JWTParser, revoked RevocationChecker, users UserGetter) *IdentityService {
	return &IdentityService{
		parser:  parser,
		revoked: revoked,
		users:   users,
	}
}

// Resolve returns the user for token. Every failure is reported as ErrUnauthenticated;
// the reason is only logged.
func (s *IdentityService) Resolve(ctx context.Context, token string) (*models.UserDB, error) {
	log := logger.FromContext(ctx)

	claims, err := s.parser.GetClaims(ctx, token)
	if err != nil {
		log.Infow("token rejected", "reason", err)
		return nil, ErrUnauthenticated
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			log.Errorw("failed to check token revocation", "jti", claims.ID, "err", err)
			return nil, ErrUnauthenticated
		}
		if revoked {
			log.Infow("token rejected", "reason", "revoked", "jti", claims.ID)
			return nil, ErrUnauthenticated
		}
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		log.Errorw("failed to load user", "user_id", claims.UserID, "err", err)
		return nil, ErrUnauthenticated
	}
	if user == nil {
		log.Infow("token rejected", "reason", "user not found", "user_id", claims.UserID)
		return nil, ErrUnauthenticated
	}

	return user, nil
}
