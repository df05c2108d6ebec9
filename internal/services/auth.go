package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cynq/cynq-backend/internal/data/repos"
	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/ctxutil"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error

	// VerifyAccessToken parses and validates a bearer token and returns
	// the user id it was minted for.
	VerifyAccessToken(tokenString string) (uuid.UUID, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo

	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecret string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecret:     []byte(jwtSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*types.User, *TokenPair, error) {
	ctx = ctxutil.Default(ctx)

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	exists, err := s.userRepo.EmailExists(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hash),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}

	var pair *TokenPair
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.userRepo.Create(dbc, []*types.User{u}); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		var err error
		pair, err = s.issueTokens(dbc, u)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("user registered", "user_id", u.ID.String())
	return u, pair, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error) {
	ctx = ctxutil.Default(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: invalid credentials", ErrNotAuthenticated)
		}
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("%w: invalid credentials", ErrNotAuthenticated)
	}

	var pair *TokenPair
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.userTokenRepo.DeleteExpired(dbc, time.Now()); err != nil {
			return fmt.Errorf("purge expired tokens: %w", err)
		}
		var err error
		pair, err = s.issueTokens(dbc, u)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	ctx = ctxutil.Default(ctx)
	if strings.TrimSpace(refreshToken) == "" {
		return nil, fmt.Errorf("%w: missing refresh token", ErrNotAuthenticated)
	}

	var pair *TokenPair
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		row, err := s.userTokenRepo.GetByRefreshToken(dbc, refreshToken)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: unknown refresh token", ErrNotAuthenticated)
			}
			return fmt.Errorf("lookup refresh token: %w", err)
		}
		if row.ExpiresAt.Before(time.Now()) {
			_ = s.userTokenRepo.DeleteByRefreshToken(dbc, refreshToken)
			return fmt.Errorf("%w: refresh token expired", ErrNotAuthenticated)
		}

		u, err := s.userRepo.GetByID(dbc, row.UserID)
		if err != nil {
			return fmt.Errorf("lookup user: %w", err)
		}

		// Rotate: the presented refresh token is single use.
		if err := s.userTokenRepo.DeleteByRefreshToken(dbc, refreshToken); err != nil {
			return fmt.Errorf("rotate refresh token: %w", err)
		}
		pair, err = s.issueTokens(dbc, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	ctx = ctxutil.Default(ctx)
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return s.userTokenRepo.DeleteByRefreshToken(dbctx.Context{Ctx: ctx}, refreshToken)
}

func (s *authService) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return uuid.Nil, fmt.Errorf("%w: missing token", ErrNotAuthenticated)
	}

	claims := jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, fmt.Errorf("%w: invalid token", ErrNotAuthenticated)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid subject", ErrNotAuthenticated)
	}
	return userID, nil
}

func (s *authService) AccessTTL() time.Duration { return s.accessTTL }

func (s *authService) issueTokens(dbc dbctx.Context, u *types.User) (*TokenPair, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   u.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh := uuid.NewString()
	row := &types.UserToken{
		ID:           uuid.New(),
		UserID:       u.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(s.refreshTTL),
	}
	if _, err := s.userTokenRepo.Create(dbc, []*types.UserToken{row}); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
