package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"overcooked-storefront/admin-svc/internal/domain"
	"overcooked-storefront/pkg/logx"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users    UserRepository
	sessions SessionStore
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(users UserRepository, sessions SessionStore, ttl time.Duration) *AuthService {
	return &AuthService{users: users, sessions: sessions, ttl: ttl, now: time.Now}
}

// SignIn checks the credentials and opens a session. Every failure is
// reported as ErrInvalidCredentials; the cause only goes to the log.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.SessionView, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		logx.Warn().Err(err).Str("email", email).Msg("sign-in rejected")
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logx.Warn().Err(err).Str("user_id", user.ID).Msg("sign-in rejected")
		return nil, domain.ErrInvalidCredentials
	}

	session := domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	logx.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("signed in")
	return viewOf(session, user.Role), nil
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Session resolves a token and looks up the user's current role.
func (s *AuthService) Session(ctx context.Context, token string) (*domain.SessionView, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	role, err := s.users.GetUserRole(ctx, session.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup role: %w", err)
	}
	return viewOf(*session, role), nil
}

// EnsureUser creates the account if the email is not registered yet.
func (s *AuthService) EnsureUser(ctx context.Context, email, password, role string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{ID: uuid.NewString(), Email: email, PasswordHash: string(hash), Role: role}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	logx.Info().Str("user_id", user.ID).Str("role", role).Msg("user created")
	return nil
}

func viewOf(session domain.Session, role string) *domain.SessionView {
	return &domain.SessionView{
		Token:     session.Token,
		UserID:    session.UserID,
		Email:     session.Email,
		Role:      role,
		IsAdmin:   role == domain.RoleAdmin,
		ExpiresAt: session.ExpiresAt,
	}
}
