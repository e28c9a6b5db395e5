package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/procurehub/procurehub/internal/domain/entity"
)

func hashForTest(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func activeUser(t *testing.T) *entity.User {
	return &entity.User{
		ID:             3,
		EmployeeNumber: "EMP003",
		FullName:       "Bob Tan",
		Email:          "bob@example.com",
		PasswordHash:   hashForTest(t, "s3cret99"),
		Role:           entity.RoleApprover,
		IsActive:       true,
	}
}

func TestAuthService_LoginAndParseToken(t *testing.T) {
	user := activeUser(t)
	userRepo := &mockUserRepo{
		getByEmployeeNumberFunc: func(ctx context.Context, employeeNumber string) (*entity.User, error) {
			if employeeNumber == "EMP003" {
				return user, nil
			}
			return nil, nil
		},
	}

	svc := NewAuthService(userRepo, "test-secret", time.Hour, &mockLogger{})

	token, got, err := svc.Login(context.Background(), "EMP003", "s3cret99")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if got.ID != 3 {
		t.Errorf("user.ID = %d, want 3", got.ID)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() failed: %v", err)
	}
	if claims.UserID != 3 || claims.EmployeeNumber != "EMP003" || claims.Role != "approver" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	user := activeUser(t)
	inactive := activeUser(t)
	inactive.IsActive = false
	inactive.EmployeeNumber = "EMP009"

	userRepo := &mockUserRepo{
		getByEmployeeNumberFunc: func(ctx context.Context, employeeNumber string) (*entity.User, error) {
			switch employeeNumber {
			case "EMP003":
				return user, nil
			case "EMP009":
				return inactive, nil
			}
			return nil, nil
		},
	}

	svc := NewAuthService(userRepo, "test-secret", time.Hour, &mockLogger{})

	tests := []struct {
		name           string
		employeeNumber string
		password       string
	}{
		{"unknown employee", "EMP404", "s3cret99"},
		{"wrong password", "EMP003", "nope"},
		{"deactivated account", "EMP009", "s3cret99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.employeeNumber, tt.password)
			if !errors.Is(err, entity.ErrForbidden) {
				t.Errorf("Login() error = %v, want ErrForbidden", err)
			}
		})
	}
}

func TestAuthService_ParseTokenRejectsWrongSecret(t *testing.T) {
	user := activeUser(t)
	userRepo := &mockUserRepo{
		getByEmployeeNumberFunc: func(ctx context.Context, employeeNumber string) (*entity.User, error) {
			return user, nil
		},
	}

	issuer := NewAuthService(userRepo, "secret-a", time.Hour, &mockLogger{})
	verifier := NewAuthService(userRepo, "secret-b", time.Hour, &mockLogger{})

	token, _, err := issuer.Login(context.Background(), "EMP003", "s3cret99")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	if _, err := verifier.ParseToken(token); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("ParseToken() error = %v, want ErrForbidden", err)
	}
}

func TestAuthService_ParseTokenRejectsExpired(t *testing.T) {
	user := activeUser(t)
	userRepo := &mockUserRepo{
		getByEmployeeNumberFunc: func(ctx context.Context, employeeNumber string) (*entity.User, error) {
			return user, nil
		},
	}

	svc := NewAuthService(userRepo, "test-secret", -time.Minute, &mockLogger{})

	token, _, err := svc.Login(context.Background(), "EMP003", "s3cret99")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	if _, err := svc.ParseToken(token); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("ParseToken() error = %v, want ErrForbidden", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	user := activeUser(t)
	inactive := activeUser(t)
	inactive.ID = 9
	inactive.IsActive = false

	userRepo := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.User, error) {
			switch id {
			case 3:
				return user, nil
			case 9:
				return inactive, nil
			}
			return nil, nil
		},
	}

	svc := NewAuthService(userRepo, "test-secret", time.Hour, &mockLogger{})

	got, err := svc.CurrentUser(context.Background(), 3)
	if err != nil {
		t.Fatalf("CurrentUser() failed: %v", err)
	}
	if got.EmployeeNumber != "EMP003" {
		t.Errorf("user = %+v, want EMP003", got)
	}

	// A token may outlive its account; both gone and deactivated read as
	// not found so the client drops the session
	if _, err := svc.CurrentUser(context.Background(), 404); !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("CurrentUser(404) error = %v, want ErrNotFound", err)
	}
	if _, err := svc.CurrentUser(context.Background(), 9); !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("CurrentUser(9) error = %v, want ErrNotFound", err)
	}
}

func TestAuthService_SignupValidation(t *testing.T) {
	valid := SignupInput{
		EmployeeNumber: "EMP010",
		FullName:       "New Hire",
		Email:          "new@example.com",
		Password:       "longenough",
		Department:     "IT",
		Location:       "HQ",
		Role:           entity.RoleRequester,
	}

	tests := []struct {
		name   string
		mutate func(*SignupInput)
	}{
		{"blank employee number", func(in *SignupInput) { in.EmployeeNumber = "" }},
		{"malformed email", func(in *SignupInput) { in.Email = "not-an-email" }},
		{"short password", func(in *SignupInput) { in.Password = "short" }},
		{"unknown role", func(in *SignupInput) { in.Role = entity.Role("superuser") }},
	}

	svc := NewAuthService(&mockUserRepo{}, "test-secret", time.Hour, &mockLogger{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			if _, _, err := svc.Signup(context.Background(), input); !errors.Is(err, entity.ErrValidation) {
				t.Errorf("Signup() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestAuthService_SignupDuplicateEmployeeNumber(t *testing.T) {
	user := activeUser(t)
	userRepo := &mockUserRepo{
		getByEmployeeNumberFunc: func(ctx context.Context, employeeNumber string) (*entity.User, error) {
			return user, nil
		},
	}

	svc := NewAuthService(userRepo, "test-secret", time.Hour, &mockLogger{})

	input := SignupInput{
		EmployeeNumber: "EMP003",
		Email:          "other@example.com",
		Password:       "longenough",
		Role:           entity.RoleRequester,
	}
	if _, _, err := svc.Signup(context.Background(), input); !errors.Is(err, entity.ErrValidation) {
		t.Errorf("Signup() error = %v, want ErrValidation", err)
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	user := activeUser(t)
	userRepo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == "bob@example.com" {
				return user, nil
			}
			return nil, nil
		},
	}

	svc := NewAuthService(userRepo, "test-secret", time.Hour, &mockLogger{})

	if err := svc.ResetPassword(context.Background(), "bob@example.com", "newpassword"); err != nil {
		t.Fatalf("ResetPassword() failed: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), "nobody@example.com", "newpassword"); !errors.Is(err, entity.ErrValidation) {
		t.Errorf("ResetPassword() error = %v, want ErrValidation", err)
	}

	if err := svc.ResetPassword(context.Background(), "bob@example.com", "tiny"); !errors.Is(err, entity.ErrValidation) {
		t.Errorf("ResetPassword() error = %v, want ErrValidation", err)
	}
}
