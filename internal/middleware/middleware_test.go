package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"unauthenticated", apperrors.ErrUnauthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"forbidden", apperrors.NewForbiddenError("not your club"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"club not found", apperrors.ErrClubNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"wrapped not found", fmt.Errorf("decide: %w", apperrors.ErrMembershipNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"already member", apperrors.ErrAlreadyMember, http.StatusBadRequest, dto.ErrorCodeAlreadyMember},
		{"pending", apperrors.ErrRequestPending, http.StatusBadRequest, dto.ErrorCodeRequestPending},
		{"not a member", apperrors.ErrNotAMember, http.StatusBadRequest, dto.ErrorCodeNotAMember},
		{"invalid action", apperrors.ErrInvalidAction, http.StatusBadRequest, dto.ErrorCodeInvalidAction},
		{"validation", apperrors.NewValidationError("name is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"bad request", apperrors.NewBadRequestError("bad status"), http.StatusBadRequest, dto.ErrorCodeBadRequest},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"conflict", apperrors.NewConflictError("taken"), http.StatusConflict, dto.ErrorCodeConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if resp := decodeError(t, rec); resp.Success || resp.Error.Code != tt.wantCode {
				t.Errorf("body = %+v, want code %s", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestHandleAPIErrorKeepsCustomMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, apperrors.ErrClubNotFound)

	if msg := decodeError(t, rec).Error.Message; msg != "club not found" {
		t.Errorf("message = %q", msg)
	}
}

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	m := NewAuthMiddleware(jwtService)

	r := gin.New()
	whoami := func(c *gin.Context) {
		caller := CallerFrom(c)
		if caller == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, string(caller.Role)+":"+caller.UserID)
	}
	r.GET("/optional", m.OptionalAuth(), whoami)
	r.GET("/any", m.JWTAuth(), whoami)
	r.GET("/admin", m.JWTAuth(), m.RoleRequired(models.RoleAdmin), whoami)
	return r, jwtService
}

func TestAuthMiddleware(t *testing.T) {
	r, jwtService := newAuthRouter(t)
	adminID := uuid.New().String()
	adminToken, _, _ := jwtService.GenerateAccessToken(auth.Subject{UserID: adminID, Role: "admin"})
	studentToken, _, _ := jwtService.GenerateAccessToken(auth.Subject{UserID: uuid.New().String(), Role: "student"})

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"optional anonymous", "/optional", "", http.StatusOK, "anonymous"},
		{"optional bad token", "/optional", "Bearer junk", http.StatusOK, "anonymous"},
		{"optional with token", "/optional", "Bearer " + adminToken, http.StatusOK, "admin:" + adminID},
		{"required missing", "/any", "", http.StatusUnauthorized, ""},
		{"required bad token", "/any", "Bearer junk", http.StatusUnauthorized, ""},
		{"required ok", "/any", "Bearer " + adminToken, http.StatusOK, "admin:" + adminID},
		{"role mismatch", "/admin", "Bearer " + studentToken, http.StatusForbidden, ""},
		{"role ok", "/admin", "Bearer " + adminToken, http.StatusOK, "admin:" + adminID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestBindJSONRejectsInvalidBody(t *testing.T) {
	r := gin.New()
	r.POST("/clubs", func(c *gin.Context) {
		var req dto.CreateClubRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/clubs", nil)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty body status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/clubs", strings.NewReader(`{"name":"X","description":"d","category":"c"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	resp := decodeError(t, rec)
	if rec.Code != http.StatusBadRequest || resp.Error.Field != "Name" {
		t.Errorf("short name = %d %+v", rec.Code, resp.Error)
	}
}
