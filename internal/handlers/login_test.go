package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/filmtrack/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	return req
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name         string
		request      *http.Request
		mockSetup    func(m *MockLoginer)
		expectedCode int
		expectedBody map[string]string
		wantBearer   bool
	}{
		{
			name:    "form success",
			request: formRequest(url.Values{"username": {"john"}, "password": {"pass1234"}}),
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "john", "pass1234").Return("JWT_TOKEN", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]string{"access_token": "JWT_TOKEN", "token_type": "bearer"},
		},
		{
			name:    "json success",
			request: jsonRequest(`{"username":"john","password":"pass1234"}`),
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "john", "pass1234").Return("JWT_TOKEN", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]string{"access_token": "JWT_TOKEN", "token_type": "bearer"},
		},
		{
			name:    "invalid credentials",
			request: formRequest(url.Values{"username": {"john"}, "password": {"wrongpass"}}),
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "john", "wrongpass").Return("", services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: map[string]string{"detail": "Incorrect username or password"},
			wantBearer:   true,
		},
		{
			name:    "internal error",
			request: formRequest(url.Values{"username": {"john"}, "password": {"pass1234"}}),
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "john", "pass1234").Return("", errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]string{"detail": "Internal server error"},
		},
		{
			name:         "missing password",
			request:      formRequest(url.Values{"username": {"john"}}),
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"detail": "Username and password are required"},
		},
		{
			name:         "invalid json",
			request:      jsonRequest("{invalid"),
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"detail": "Username and password are required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			rr := httptest.NewRecorder()
			NewLoginHandler(mockSvc)(rr, tt.request)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedBody, resp)

			if tt.wantBearer {
				assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
