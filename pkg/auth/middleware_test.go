package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	jwtService := NewMockJWTServiceInterface(ctrl)

	var gotUserID int
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Context().Value(UserIDKey).(int)
		gotRole = r.Context().Value(RoleKey).(string)
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(jwtService)(next)

	tests := []struct {
		name         string
		prepare      func(r *http.Request)
		expectedCode int
		expectedRole string
	}{
		{
			name: "Valid bearer token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer good")
				jwtService.EXPECT().ValidateToken("good").Return(&Claims{UserID: 7, Role: "admin"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedRole: "admin",
		},
		{
			name: "Token in query is rejected",
			prepare: func(r *http.Request) {
				q := r.URL.Query()
				q.Set("token", "query")
				r.URL.RawQuery = q.Encode()
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Missing header",
			prepare:      func(r *http.Request) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Invalid token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer bad")
				jwtService.EXPECT().ValidateToken("bad").Return(nil, errors.New("invalid token"))
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, gotRole = 0, ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, 7, gotUserID)
				assert.Equal(t, tt.expectedRole, gotRole)
			}
		})
	}
}

func TestQueryTokenMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	jwtService := NewMockJWTServiceInterface(ctrl)

	var gotUserID int
	handler := QueryTokenMiddleware(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Context().Value(UserIDKey).(int)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name         string
		url          string
		header       string
		prepare      func()
		expectedCode int
	}{
		{
			name: "Token in query",
			url:  "/ws?token=query",
			prepare: func() {
				jwtService.EXPECT().ValidateToken("query").Return(&Claims{UserID: 7, Role: "user"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Header wins over query",
			url:    "/ws?token=query",
			header: "Bearer header",
			prepare: func() {
				jwtService.EXPECT().ValidateToken("header").Return(&Claims{UserID: 7, Role: "user"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Malformed header does not fall back to query",
			url:          "/ws?token=query",
			header:       "Basic abc",
			prepare:      func() {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "No token",
			url:          "/ws",
			prepare:      func() {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = 0
			tt.prepare()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, 7, gotUserID)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	roles := NewMockRoleSource(ctrl)

	handler := RequireAdmin(roles)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name         string
		role         any
		prepare      func()
		expectedCode int
	}{
		{
			name: "Admin passes",
			role: "admin",
			prepare: func() {
				roles.EXPECT().CurrentRole(gomock.Any(), 7).Return("admin", nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Demoted admin is forbidden",
			role: "admin",
			prepare: func() {
				roles.EXPECT().CurrentRole(gomock.Any(), 7).Return("user", nil)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "Deleted admin is forbidden",
			role: "admin",
			prepare: func() {
				roles.EXPECT().CurrentRole(gomock.Any(), 7).Return("", nil)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "Role lookup fails",
			role: "admin",
			prepare: func() {
				roles.EXPECT().CurrentRole(gomock.Any(), 7).Return("", errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{name: "User is forbidden without lookup", role: "user", prepare: func() {}, expectedCode: http.StatusForbidden},
		{name: "No role is forbidden", role: nil, prepare: func() {}, expectedCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepare()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			ctx := context.WithValue(req.Context(), UserIDKey, 7)
			if tt.role != nil {
				ctx = context.WithValue(ctx, RoleKey, tt.role)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin("admin"))
	assert.False(t, IsAdmin("user"))
	assert.False(t, IsAdmin(""))
}
