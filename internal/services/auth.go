package services

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sbilibin2017/filmtrack/internal/hasher"
	"github.com/sbilibin2017/filmtrack/internal/jwt"
	"github.com/sbilibin2017/filmtrack/internal/logger"
	"github.com/sbilibin2017/filmtrack/internal/models"
	"github.com/sbilibin2017/filmtrack/internal/repositories"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 8
	maxEmailLen    = 254
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash string) (*models.UserDB, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// JWTParser verifies a token and returns its claims.
type JWTParser interface {
	GetClaims(ctx context.Context, token string) (*jwt.Claims, error)
}

// TokenRevoker adds a token ID to the denylist until expiresAt.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// AuthService handles registration, login and logout.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	hasher      PasswordHasher
	generator   JWTGenerator
	parser      JWTParser
	revoker     TokenRevoker
	kafkaWriter KafkaWriter
}

// NewAuthService creates a new AuthService instance.
// revoker and kafkaWriter may be nil.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	hasher PasswordHasher,
	generator JWTGenerator,
	parser JWTParser,
	revoker TokenRevoker,
	kafkaWriter KafkaWriter,
) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		hasher:      hasher,
		generator:   generator,
		parser:      parser,
		revoker:     revoker,
		kafkaWriter: kafkaWriter,
	}
}

// Register validates the input, creates a new user and returns it.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) (*models.UserDB, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validateRegistration(username, email, password); err != nil {
		log.Infow("registration rejected", "username", username, "err", err)
		return nil, err
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		log.Errorw("failed to check username", "err", err)
		return nil, err
	}
	if user != nil {
		log.Infow("username already registered", "username", username)
		return nil, ErrUserAlreadyExists
	}

	user, err = svc.reader.GetByEmail(ctx, email)
	if err != nil {
		log.Errorw("failed to check email", "err", err)
		return nil, err
	}
	if user != nil {
		log.Infow("email already registered", "email", email)
		return nil, ErrUserAlreadyExists
	}

	hash, err := svc.hasher.Hash(password)
	if err != nil {
		log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err = svc.writer.Save(ctx, username, email, hash)
	if errors.Is(err, repositories.ErrDuplicateUser) {
		log.Infow("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	userID := user.UserID.String()
	publishEvent(ctx, svc.kafkaWriter, newEvent(userID, models.OperationUserRegistered, userID))

	return user, nil
}

func validateRegistration(username, email, password string) error {
	errs := fieldErrors{}

	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		errs.add("username", "must be between 3 and 50 characters")
	}

	if len(email) > maxEmailLen {
		errs.add("email", "must be at most 254 characters")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Name != "" || addr.Address != email {
		errs.add("email", "must be a valid email address")
	}

	if utf8.RuneCountInString(password) < minPasswordLen {
		errs.add("password", "must be at least 8 characters")
	} else if len(password) > hasher.MaxPasswordBytes {
		errs.add("password", "must be at most 72 bytes")
	}

	return errs.err()
}

// Login authenticates a user and returns a JWT token.
// An unknown username and a wrong password produce the same error.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		log.Infow("login for unknown user", "username", username)
		return "", ErrInvalidCredentials
	}

	if !svc.hasher.Verify(password, user.PasswordHash) {
		log.Infow("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.generator.Generate(ctx, user.UserID)
	if err != nil {
		log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// Logout revokes token until it expires. Other tokens of the same user stay valid.
func (svc *AuthService) Logout(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	claims, err := svc.parser.GetClaims(ctx, token)
	if err != nil {
		log.Infow("logout with invalid token", "err", err)
		return ErrUnauthenticated
	}

	if svc.revoker == nil {
		log.Warnw("token denylist not configured, skipping revocation", "jti", claims.ID)
		return nil
	}

	if err := svc.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		log.Errorw("failed to revoke token", "jti", claims.ID, "err", err)
		return err
	}

	return nil
}
