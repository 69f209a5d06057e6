package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/filmtrack/internal/hasher"
	"github.com/sbilibin2017/filmtrack/internal/jwt"
	"github.com/sbilibin2017/filmtrack/internal/models"
	"github.com/sbilibin2017/filmtrack/internal/repositories"
	"github.com/sbilibin2017/filmtrack/internal/services"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	saved := &models.UserDB{UserID: userID, Username: "alice", Email: "alice@example.com", PasswordHash: "hashed"}

	tests := []struct {
		name     string
		username string
		email    string
		password string
		setup    func(r *services.MockUserReader, w *services.MockUserWriter, h *services.MockPasswordHasher, k *services.MockKafkaWriter)
		wantErr  error
		wantUser bool
	}{
		{
			name:     "successful registration",
			username: "  alice ",
			email:    "alice@example.com",
			password: "password123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, h *services.MockPasswordHasher, k *services.MockKafkaWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
				r.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
				h.EXPECT().Hash("password123").Return("hashed", nil)
				w.EXPECT().Save(gomock.Any(), "alice", "alice@example.com", "hashed").Return(saved, nil)
				k.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, msgs ...kafka.Message) error {
						require.Len(t, msgs, 1)
						var ev models.Event
						require.NoError(t, json.Unmarshal(msgs[0].Value, &ev))
						assert.Equal(t, models.OperationUserRegistered, ev.Operation)
						assert.Equal(t, userID.String(), ev.UserID)
						assert.Equal(t, ev.EventID, string(msgs[0].Key))
						return nil
					})
			},
			wantUser: true,
		},
		{
			name:     "username taken",
			username: "alice",
			email:    "alice@example.com",
			password: "password123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, h *services.MockPasswordHasher, k *services.MockKafkaWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&models.UserDB{UserID: uuid.New()}, nil)
			},
			wantErr: services.ErrUserAlreadyExists,
		},
		{
			name:     "email taken",
			username: "alice",
			email:    "alice@example.com",
			password: "password123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, h *services.MockPasswordHasher, k *services.MockKafkaWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
				r.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(&models.UserDB{UserID: uuid.New()}, nil)
			},
			wantErr: services.ErrUserAlreadyExists,
		},
		{
			name:     "unique violation on insert",
			username: "alice",
			email:    "alice@example.com",
			password: "password123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, h *services.MockPasswordHasher, k *services.MockKafkaWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
				r.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
				h.EXPECT().Hash("password123").Return("hashed", nil)
				w.EXPECT().Save(gomock.Any(), "alice", "alice@example.com", "hashed").Return(nil, repositories.ErrDuplicateUser)
			},
			wantErr: services.ErrUserAlreadyExists,
		},
		{
			name:     "reader error",
			username: "eve",
			email:    "eve@example.com",
			password: "password123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, h *services.MockPasswordHasher, k *services.MockKafkaWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "eve").Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
		{
			name:     "writer error",
			username: "carol",
			email:    "carol@example.com",
			password: "password123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, h *services.MockPasswordHasher, k *services.MockKafkaWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "carol").Return(nil, nil)
				r.EXPECT().GetByEmail(gomock.Any(), "carol@example.com").Return(nil, nil)
				h.EXPECT().Hash("password123").Return("hashed", nil)
				w.EXPECT().Save(gomock.Any(), "carol", "carol@example.com", "hashed").Return(nil, errors.New("save error"))
			},
			wantErr: errors.New("save error"),
		},
		{
			name:     "kafka failure does not fail registration",
			username: "alice",
			email:    "alice@example.com",
			password: "password123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, h *services.MockPasswordHasher, k *services.MockKafkaWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
				r.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
				h.EXPECT().Hash("password123").Return("hashed", nil)
				w.EXPECT().Save(gomock.Any(), "alice", "alice@example.com", "hashed").Return(saved, nil)
				k.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
			wantUser: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockHasher := services.NewMockPasswordHasher(ctrl)
			mockKafka := services.NewMockKafkaWriter(ctrl)
			tt.setup(mockReader, mockWriter, mockHasher, mockKafka)

			svc := services.NewAuthService(mockReader, mockWriter, mockHasher, nil, nil, nil, mockKafka)
			user, err := svc.Register(ctx, tt.username, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantUser {
				assert.Equal(t, saved, user)
			}
		})
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		fields   []string
	}{
		{name: "username too short", username: "al", email: "al@example.com", password: "password123", fields: []string{"username"}},
		{name: "username of spaces", username: "      ", email: "al@example.com", password: "password123", fields: []string{"username"}},
		{name: "username too long", username: strings.Repeat("a", 51), email: "al@example.com", password: "password123", fields: []string{"username"}},
		{name: "email without at", username: "alice", email: "alice.example.com", password: "password123", fields: []string{"email"}},
		{name: "email too long", username: "alice", email: strings.Repeat("a", 64) + "@" + strings.Repeat("b", 240) + ".com", password: "password123", fields: []string{"email"}},
		{name: "email with display name", username: "alice", email: "Alice <alice@example.com>", password: "password123", fields: []string{"email"}},
		{name: "password too short", username: "alice", email: "alice@example.com", password: "short", fields: []string{"password"}},
		{name: "password too long", username: "alice", email: "alice@example.com", password: strings.Repeat("p", 73), fields: []string{"password"}},
		{name: "everything wrong", username: "", email: "", password: "", fields: []string{"username", "email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := services.NewAuthService(
				services.NewMockUserReader(ctrl), services.NewMockUserWriter(ctrl),
				services.NewMockPasswordHasher(ctrl), nil, nil, nil, nil,
			)
			user, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			assert.Nil(t, user)

			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Fields, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	h := hasher.New(bcrypt.MinCost)
	hash, err := h.Hash("password123")
	require.NoError(t, err)

	user := &models.UserDB{UserID: uuid.New(), Username: "alice", PasswordHash: hash}

	tests := []struct {
		name      string
		username  string
		password  string
		user      *models.UserDB
		readerErr error
		jwtToken  string
		jwtErr    error
		wantToken string
		wantErr   error
	}{
		{
			name:      "successful login",
			username:  "alice",
			password:  "password123",
			user:      user,
			jwtToken:  "token123",
			wantToken: "token123",
		},
		{
			name:      "username is trimmed",
			username:  "  alice ",
			password:  "password123",
			user:      user,
			jwtToken:  "token123",
			wantToken: "token123",
		},
		{
			name:     "unknown user",
			username: "bob",
			password: "password123",
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrongpass",
			user:     user,
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			username:  "alice",
			password:  "password123",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:     "jwt error",
			username: "alice",
			password: "password123",
			user:     user,
			jwtErr:   errors.New("jwt failed"),
			wantErr:  errors.New("jwt failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockReader := services.NewMockUserReader(ctrl)
			mockJWT := services.NewMockJWTGenerator(ctrl)

			mockReader.EXPECT().GetByUsername(gomock.Any(), strings.TrimSpace(tt.username)).Return(tt.user, tt.readerErr)
			if tt.user != nil && tt.password == "password123" {
				mockJWT.EXPECT().Generate(gomock.Any(), tt.user.UserID).Return(tt.jwtToken, tt.jwtErr)
			}

			svc := services.NewAuthService(mockReader, nil, h, mockJWT, nil, nil, nil)
			token, err := svc.Login(ctx, tt.username, tt.password)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	claims := &jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ID: "jti-1", ExpiresAt: gojwt.NewNumericDate(exp)},
		UserID:           uuid.New(),
	}

	t.Run("revokes the token until it expires", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		parser := services.NewMockJWTParser(ctrl)
		revoker := services.NewMockTokenRevoker(ctrl)
		parser.EXPECT().GetClaims(gomock.Any(), "tok").Return(claims, nil)
		revoker.EXPECT().Revoke(gomock.Any(), "jti-1", exp).Return(nil)

		svc := services.NewAuthService(nil, nil, nil, nil, parser, revoker, nil)
		assert.NoError(t, svc.Logout(ctx, "tok"))
	})

	t.Run("invalid token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		parser := services.NewMockJWTParser(ctrl)
		parser.EXPECT().GetClaims(gomock.Any(), "bad").Return(nil, jwt.ErrMalformed)

		svc := services.NewAuthService(nil, nil, nil, nil, parser, services.NewMockTokenRevoker(ctrl), nil)
		assert.ErrorIs(t, svc.Logout(ctx, "bad"), services.ErrUnauthenticated)
	})

	t.Run("revocation store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		parser := services.NewMockJWTParser(ctrl)
		revoker := services.NewMockTokenRevoker(ctrl)
		parser.EXPECT().GetClaims(gomock.Any(), "tok").Return(claims, nil)
		revoker.EXPECT().Revoke(gomock.Any(), "jti-1", exp).Return(errors.New("redis down"))

		svc := services.NewAuthService(nil, nil, nil, nil, parser, revoker, nil)
		assert.EqualError(t, svc.Logout(ctx, "tok"), "redis down")
	})

	t.Run("no denylist configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		parser := services.NewMockJWTParser(ctrl)
		parser.EXPECT().GetClaims(gomock.Any(), "tok").Return(claims, nil)

		svc := services.NewAuthService(nil, nil, nil, nil, parser, nil, nil)
		assert.NoError(t, svc.Logout(ctx, "tok"))
	})
}
