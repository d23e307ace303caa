// Package service holds the credential and token rules shared by the HTTP layer and the seed.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rentapp_backend/internal/model"
	"rentapp_backend/internal/repository"
	"rentapp_backend/pkg/utils/jwt"
)

var (
	ErrDuplicateEmail = &model.AppError{
		Code: model.CodeConflict, Message: "Email already registered", Field: "email",
	}
	ErrDuplicateUsername = &model.AppError{
		Code: model.CodeConflict, Message: "Username already taken", Field: "username",
	}
	ErrInvalidCredentials = &model.AppError{
		Code: model.CodeUnauthenticated, Message: "Invalid email or password",
	}
	ErrInvalidToken = &model.AppError{
		Code: model.CodeUnauthenticated, Message: "Invalid or malformed token",
	}
	ErrExpiredToken = &model.AppError{
		Code: model.CodeUnauthenticated, Message: "Token has expired",
	}
)

// TokenManager signs and checks bearer tokens.
type TokenManager interface {
	GenerateToken(userID uint, role string) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

// Identity is a verified caller. Role comes from the stored user, not the token.
type Identity struct {
	UserID uint
	Role   model.Role
	User   *model.User
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == model.RoleAdmin
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	Role        model.Role
	PhoneNumber string
}

type AuthService struct {
	users  repository.UserRepository
	tokens TokenManager
}

func NewAuthService(users repository.UserRepository, tokens TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register stores a new account with a bcrypt hash of the password.
// Deciding who may create which role is up to the caller.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Role == "" {
		in.Role = model.RoleCustomer
	}
	if !in.Role.Valid() {
		return nil, model.NewValidationError("role", "Role must be one of admin, broker, customer")
	}
	if in.Password == "" {
		return nil, model.NewValidationError("password", "Password is required")
	}
	email := NormalizeEmail(in.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}
	existing, err = s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:    in.Username,
		Email:       email,
		Password:    hash,
		PhoneNumber: in.PhoneNumber,
		Role:        in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, model.NewConflictError("Email or username already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate checks the password and issues a token. Unknown e-mail and
// wrong password fail the same way.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil || !CheckPassword(user.Password, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// IssueToken signs a token for an account that was just created.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	return s.tokens.GenerateToken(user.ID, string(user.Role))
}

// Verify resolves a bearer token to the user it was issued for. A token whose
// user no longer exists is invalid.
func (s *AuthService) Verify(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("load token user: %w", err)
	}
	return &Identity{UserID: user.ID, Role: user.Role, User: user}, nil
}

// NormalizeEmail is the stored form of an address: trimmed and lower-cased,
// so uniqueness and login ignore case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
