package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/auth"
	"github.com/yigit/clubhub/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(repos *repositories.Repositories) (*AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "clubhub.test",
	})
	svc := NewAuthService(repos.Users, jwtService, logger.Nop()).WithPasswordHasher(func(p string) (string, error) {
		return auth.HashPasswordWithCost(p, bcrypt.MinCost)
	})
	return svc, jwtService
}

func TestSignupAndSignin(t *testing.T) {
	repos := repositories.NewMemoryRepositories()
	svc, jwtService := newAuthService(repos)
	ctx := context.Background()

	user, err := svc.Signup(ctx, models.SignupCommand{
		Name:     "  Ada   Lovelace ",
		Email:    " Ada@Example.EDU ",
		Password: "secret123",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Email != "ada@example.edu" || user.Name != "Ada Lovelace" {
		t.Errorf("user = %+v", user)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}

	token, err := svc.Signin(ctx, "ADA@example.edu", "secret123")
	if err != nil {
		t.Fatalf("Signin: %v", err)
	}
	if token.TokenType != "Bearer" || token.ExpiresIn != 3600 || token.User.ID != user.ID {
		t.Errorf("token = %+v", token)
	}

	claims, err := jwtService.ValidateAndExtractClaims(token.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != string(models.RoleAdmin) {
		t.Errorf("claims = %+v", claims)
	}

	me, err := svc.Me(ctx, user.ID)
	if err != nil || me.ID != user.ID {
		t.Errorf("Me = %+v, %v", me, err)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	repos := repositories.NewMemoryRepositories()
	svc, _ := newAuthService(repos)
	ctx := context.Background()
	cmd := models.SignupCommand{Name: "Sam", Email: "sam@example.edu", Password: "secret123", Role: models.RoleStudent}

	if _, err := svc.Signup(ctx, cmd); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	cmd.Email = "SAM@example.edu"
	if _, err := svc.Signup(ctx, cmd); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("duplicate err = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestSignupValidation(t *testing.T) {
	repos := repositories.NewMemoryRepositories()
	svc, _ := newAuthService(repos)

	cases := map[string]models.SignupCommand{
		"short password": {Name: "Sam", Email: "a@b.edu", Password: "abc1", Role: models.RoleStudent},
		"no digit":       {Name: "Sam", Email: "a@b.edu", Password: "abcdefghij", Role: models.RoleStudent},
		"bad role":       {Name: "Sam", Email: "a@b.edu", Password: "secret123", Role: "professor"},
		"markup name":    {Name: "<b></b>", Email: "a@b.edu", Password: "secret123", Role: models.RoleStudent},
	}
	for name, cmd := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Signup(context.Background(), cmd); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestSigninFailures(t *testing.T) {
	repos := repositories.NewMemoryRepositories()
	svc, _ := newAuthService(repos)
	ctx := context.Background()
	_, _ = svc.Signup(ctx, models.SignupCommand{Name: "Sam", Email: "sam@example.edu", Password: "secret123", Role: models.RoleStudent})

	if _, err := svc.Signin(ctx, "sam@example.edu", "wrong-pass1"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := svc.Signin(ctx, "nobody@example.edu", "secret123"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}
}
