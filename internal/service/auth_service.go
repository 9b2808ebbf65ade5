package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/auth"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/repository"
)

type AuthService struct {
	users     *repository.UserRepo
	vessels   *repository.VesselRepo
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users *repository.UserRepo, vessels *repository.VesselRepo, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, vessels: vessels, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// AuthResult follows the OAuth2 token response so standard clients can
// read it.
type AuthResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        models.User `json:"user"`
}

type CreateUserInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Name     string      `json:"name" validate:"required"`
	Role     models.Role `json:"role" validate:"required,oneof=crew staff master"`
	ShipID   string      `json:"ship_id,omitempty"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}
	if !user.Active {
		return nil, fmt.Errorf("user account is inactive: %w", models.ErrForbidden)
	}
	token, err := auth.GenerateToken(s.jwtSecret, s.tokenTTL, user.ID, user.Email, string(user.Role), user.ShipID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        *user,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, sess models.Session) (*models.User, error) {
	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user: %w", models.ErrNotFound)
	}
	return user, nil
}

// CreateUser registers an account. Only office staff manage accounts.
func (s *AuthService) CreateUser(ctx context.Context, sess models.Session, in CreateUserInput) (*models.User, error) {
	if !sess.IsStaff() {
		return nil, fmt.Errorf("staff access required: %w", models.ErrForbidden)
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", models.ErrConflict)
	}
	if in.ShipID != "" {
		v, err := s.vessels.FindByID(ctx, in.ShipID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("vessel: %w", models.ErrNotFound)
		}
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         in.Role,
		ShipID:       in.ShipID,
		Active:       true,
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	slog.Info("user created", "user_id", id, "role", user.Role, "ship_id", user.ShipID, "by", sess.UserID)
	return user, nil
}

// ListUsers backs the crew pickers; crew members cannot browse accounts.
func (s *AuthService) ListUsers(ctx context.Context, sess models.Session, shipID string, role models.Role) ([]models.User, error) {
	if !sess.CanManageTemplates() {
		return nil, fmt.Errorf("staff or master access required: %w", models.ErrForbidden)
	}
	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, models.ErrValidation)
	}
	return s.users.Find(ctx, shipID, role)
}

// SeedAdmin makes sure an initial office account exists.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Admin",
		Role:         models.RoleStaff,
		Active:       true,
	})
	if err == nil {
		slog.Info("seeded admin user", "email", email)
	}
	return err
}
