//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"salon-scheduler/internal/domain/user"
	"salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/tests/common/authtest"
	"salon-scheduler/tests/common/dbtest"
	"salon-scheduler/tests/common/httptest"
	"salon-scheduler/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL  = "/api/auth/login"
	logoutURL = "/api/auth/logout"
	meURL     = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "manager@example.com", string(user.RoleManager))
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleStylist))

	ctx := s.T().Context()
	_, err := s.DB.Exec(ctx, "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			email:          "manager@example.com",
			password:       "password123",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown user",
			email:          "nobody@example.com",
			password:       "password123",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password",
			email:          "manager@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "deactivated user",
			email:          "inactive@example.com",
			password:       "password123",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty email",
			email:          "",
			password:       "password123",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty password",
			email:          "manager@example.com",
			password:       "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus != http.StatusOK {
				return
			}

			var loginRes resdto.LoginResponse
			httptest.DecodeResponseBody(t, w.Body, &loginRes)
			require.NotEmpty(t, loginRes.AccessToken)
			require.Equal(t, string(user.RoleManager), loginRes.Role)

			accessCookie := httptest.ExtractCookie(w, "access_token")
			require.NotNil(t, accessCookie)
			require.Equal(t, loginRes.AccessToken, accessCookie.Value)

			var lastLogin any
			err := s.DB.QueryRow(t.Context(), "SELECT last_login FROM users WHERE email = $1", tt.email).Scan(&lastLogin)
			require.NoError(t, err)
			require.NotNil(t, lastLogin, "last_login was not updated")
		})
	}
}

func (s *authSuite) TestLogout() {
	s.Run("logout clears the session cookie", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "manager@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		cleared := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, cleared)
		require.Empty(t, cleared.Value)
	})

	s.Run("logout requires a valid token", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, "invalid-token")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestMe() {
	roles := []string{
		string(user.RoleStylist),
		string(user.RoleReceptionist),
		string(user.RoleManager),
		string(user.RoleAdmin),
	}

	for _, role := range roles {
		s.Run("returns the profile for a "+role, func() {
			t := s.T()

			email := role + "-me@example.com"
			token := authtest.CreateAndLogin(t, s.DB, s.Router, email, role)

			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var meRes resdto.MeResponse
			httptest.DecodeResponseBody(t, w.Body, &meRes)
			require.NotNil(t, meRes.User)
			require.Equal(t, email, meRes.User.Email)
			require.Equal(t, role, meRes.User.Role)
			require.True(t, meRes.User.IsActive)
			require.NotContains(t, w.Body.String(), "password")
		})
	}

	s.Run("invalid token", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "invalid-token")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestCookieAuthentication() {
	s.Run("the access token cookie alone authenticates", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "cookie@example.com", string(user.RoleReceptionist))

		cookies := []*http.Cookie{{Name: "access_token", Value: token}}
		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, meURL, nil, cookies, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestTokenExpiry() {
	s.Run("an expired token is rejected", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "expiry@example.com", string(user.RoleManager))
		expiredToken := s.jwtHelper.CreateExpiredToken(t, userID, user.RoleManager)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, expiredToken)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestAuthenticationRequired() {
	s.Run("protected endpoints reject anonymous requests", func() {
		t := s.T()

		endpoints := []struct {
			method string
			path   string
		}{
			{http.MethodPost, logoutURL},
			{http.MethodGet, meURL},
			{http.MethodPost, "/api/appointments"},
			{http.MethodGet, "/api/staff/" + uuid.NewString() + "/slots?date=2025-07-14&duration=60"},
		}

		for _, endpoint := range endpoints {
			w := httptest.PerformRequest(t, s.Router, endpoint.method, endpoint.path, nil, "")
			require.Equal(t, http.StatusUnauthorized, w.Code, endpoint.path)
		}
	})
}
