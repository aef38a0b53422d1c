package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"surveyform/internal/cache"
	"surveyform/internal/model"
	"surveyform/internal/repository"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthConfig configures token issuing and password hashing
type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
	BcryptCost int
}

// AuthService handles registration, login and session validation
type AuthService struct {
	users     repository.UserRepo
	sessions  cache.SessionStore
	jwtSecret []byte
	ttl       time.Duration
	cost      int
	log       *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepo, sessions cache.SessionStore, cfg AuthConfig, log *zap.Logger) *AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		jwtSecret: []byte(cfg.JWTSecret),
		ttl:       cfg.SessionTTL,
		cost:      cost,
		log:       log,
		now:       time.Now,
	}
}

// Register creates a credential for a new user
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, model.ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return nil, model.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return nil, model.ErrPasswordTooShort
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, model.ErrEmailTaken
	case !errors.Is(err, model.ErrUserNotFound):
		return nil, fmt.Errorf("service: failed to look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("service: failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
		IsActive:     true,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, err
		}
		s.log.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("service: failed to create user: %w", err)
	}
	s.log.Info("user registered", zap.String("userId", user.ID))
	return user, nil
}

// VerifyCredentials returns the user owning email when password matches
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}
	return user, nil
}

// Login verifies credentials, opens a session and returns its signed token
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, model.ErrMissingLoginFields
	}
	if !emailPattern.MatchString(email) {
		return nil, model.ErrInvalidEmail
	}

	user, err := s.VerifyCredentials(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &model.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		s.log.Error("failed to store session", zap.Error(err))
		return nil, fmt.Errorf("service: failed to store session: %w", err)
	}

	claims := &model.UserClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	s.log.Info("user logged in", zap.String("userId", user.ID))
	return &model.LoginResponse{
		Token:     tokenString,
		User:      user,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Authenticate validates a token and its live session
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*model.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, model.ErrInvalidToken
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if errors.Is(err, model.ErrSessionNotFound) {
		return nil, model.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to load session: %w", err)
	}
	if session.UserID != claims.UserID {
		return nil, model.ErrInvalidToken
	}

	return &model.Principal{
		UserID:    session.UserID,
		Email:     session.Email,
		Name:      session.Name,
		SessionID: session.ID,
	}, nil
}

// CurrentUser loads the stored account behind an authenticated principal.
// A session whose user no longer exists is treated as unauthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, p *model.Principal) (*model.User, error) {
	if p == nil {
		return nil, model.ErrUnauthenticated
	}
	user, err := s.users.GetByID(ctx, p.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to load user: %w", err)
	}
	return user, nil
}

// Logout ends the caller's session; its token stops validating immediately
func (s *AuthService) Logout(ctx context.Context, p *model.Principal) error {
	if p == nil {
		return model.ErrUnauthenticated
	}
	if err := s.sessions.Delete(ctx, p.SessionID); err != nil {
		return fmt.Errorf("service: failed to delete session: %w", err)
	}
	s.log.Info("user logged out", zap.String("userId", p.UserID))
	return nil
}
