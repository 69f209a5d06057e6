package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/filmtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userGetterFor(user *models.UserDB) UserGetter {
	return func(ctx context.Context) (*models.UserDB, bool) {
		return user, user != nil
	}
}

func tokenGetterFor(token string) TokenGetter {
	return func(ctx context.Context) (string, bool) {
		return token, token != ""
	}
}

func TestMeHandler(t *testing.T) {
	user := &models.UserDB{UserID: uuid.New(), Username: "alice", Email: "alice@example.com", PasswordHash: "secret-hash"}

	t.Run("authenticated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewMeHandler(userGetterFor(user))(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp models.UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, user.UserID.String(), resp.ID)
		assert.Equal(t, "alice", resp.Username)
		assert.NotContains(t, rr.Body.String(), "secret-hash")
	})

	t.Run("no user in context", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewMeHandler(userGetterFor(nil))(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
	})
}

func TestLogoutHandler(t *testing.T) {
	tests := []struct {
		name         string
		token        string
		mockSetup    func(m *MockLogouter)
		expectedCode int
		expectedBody map[string]string
	}{
		{
			name:  "success",
			token: "tok",
			mockSetup: func(m *MockLogouter) {
				m.EXPECT().Logout(gomock.Any(), "tok").Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]string{"message": "Successfully logged out"},
		},
		{
			name:         "no token in context",
			expectedCode: http.StatusUnauthorized,
			expectedBody: map[string]string{"detail": "Authentication required"},
		},
		{
			name:  "denylist failure",
			token: "tok",
			mockSetup: func(m *MockLogouter) {
				m.EXPECT().Logout(gomock.Any(), "tok").Return(errors.New("redis down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]string{"detail": "Internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockLogouter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			rr := httptest.NewRecorder()
			NewLogoutHandler(mockSvc, tokenGetterFor(tt.token))(rr, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

			assert.Equal(t, tt.expectedCode, rr.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}
