package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// Claims is the JWT payload issued at login
type Claims struct {
	UserID         int64  `json:"uid"`
	EmployeeNumber string `json:"emp"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// SignupInput is the validated payload for account creation
type SignupInput struct {
	EmployeeNumber string
	FullName       string
	Email          string
	Password       string
	Department     string
	Location       string
	Role           entity.Role
}

// AuthService handles credential verification and token issuance
type AuthService interface {
	Login(ctx context.Context, employeeNumber, password string) (string, *entity.User, error)
	Signup(ctx context.Context, input SignupInput) (string, *entity.User, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	ParseToken(tokenString string) (*Claims, error)
	CurrentUser(ctx context.Context, userID int64) (*entity.User, error)
}

type authServiceImpl struct {
	userRepo port.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo port.UserRepository, secret string, tokenTTL time.Duration, logger Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Login verifies credentials and issues a signed token
func (s *authServiceImpl) Login(ctx context.Context, employeeNumber, password string) (string, *entity.User, error) {
	user, err := s.userRepo.GetByEmployeeNumber(ctx, employeeNumber)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !user.IsActive {
		return "", nil, fmt.Errorf("%w: invalid credentials", entity.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", entity.ErrForbidden)
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Error("Failed to issue token", "error", err, "user_id", user.ID)
		return "", nil, err
	}

	s.logger.Info("User logged in", "user_id", user.ID, "employee_number", user.EmployeeNumber)
	return token, user, nil
}

// Signup creates an account and logs it in
func (s *authServiceImpl) Signup(ctx context.Context, input SignupInput) (string, *entity.User, error) {
	if err := validateSignupInput(input); err != nil {
		return "", nil, err
	}

	existing, err := s.userRepo.GetByEmployeeNumber(ctx, input.EmployeeNumber)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, fmt.Errorf("%w: employee number already exists", entity.ErrValidation)
	}

	existing, err = s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, fmt.Errorf("%w: email already exists", entity.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		EmployeeNumber: input.EmployeeNumber,
		FullName:       input.FullName,
		Email:          input.Email,
		PasswordHash:   string(hash),
		Department:     input.Department,
		Location:       input.Location,
		Role:           input.Role,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", "error", err, "employee_number", input.EmployeeNumber)
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("User signed up", "user_id", user.ID, "employee_number", user.EmployeeNumber)
	return token, user, nil
}

// ResetPassword replaces the password for the account behind the email.
// The response is identical whether or not the account exists.
func (s *authServiceImpl) ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", entity.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: invalid email", entity.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		s.logger.Error("Failed to update password", "error", err, "user_id", user.ID)
		return err
	}

	s.logger.Info("Password reset", "user_id", user.ID)
	return nil
}

// ParseToken validates a token and returns its claims
func (s *authServiceImpl) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrForbidden, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", entity.ErrForbidden)
	}
	return claims, nil
}

// CurrentUser resolves the account behind an authenticated token, used by
// clients to restore a session. Deactivated accounts read as gone.
func (s *authServiceImpl) CurrentUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, entity.ErrNotFound
	}
	return user, nil
}

func (s *authServiceImpl) issueToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:         user.ID,
		EmployeeNumber: user.EmployeeNumber,
		Role:           string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func validateSignupInput(input SignupInput) error {
	if strings.TrimSpace(input.EmployeeNumber) == "" {
		return fmt.Errorf("%w: employee number is required", entity.ErrValidation)
	}
	if strings.TrimSpace(input.Email) == "" || !strings.Contains(input.Email, "@") {
		return fmt.Errorf("%w: valid email is required", entity.ErrValidation)
	}
	if len(input.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", entity.ErrValidation)
	}
	switch input.Role {
	case entity.RoleRequester, entity.RoleApprover, entity.RoleAdmin:
	default:
		return fmt.Errorf("%w: unknown role %q", entity.ErrValidation, input.Role)
	}
	return nil
}
