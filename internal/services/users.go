package services

import (
	"context"
	"net/mail"
	"strings"

	"civicreport-backend-go/internal/models"
	"civicreport-backend-go/internal/store"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const userNotFound = "User not found"

type LoginResult struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token"`
	ExpiresAt   int64       `json:"expires_at"`
}

type UserService struct {
	Users  *store.Users
	Tokens TokenService
	Log    *zap.Logger
}

func NewUserService(database *sqlx.DB, tokens TokenService, log *zap.Logger) *UserService {
	return &UserService{Users: store.NewUsers(database), Tokens: tokens, Log: log}
}

func (s *UserService) Create(ctx context.Context, email, password string, admin bool) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.User{}, ErrValidation("Email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, ErrValidation("Invalid email address")
	}
	if len(password) < 8 {
		return models.User{}, ErrValidation("Password must be at least 8 characters")
	}
	hash, err := s.Tokens.HashPassword(password)
	if err != nil {
		return models.User{}, ErrStorage("hash password", err)
	}
	user, err := s.Users.Insert(ctx, email, hash, admin)
	if err != nil {
		err = classifyStoreError("create user", err, userNotFound)
		if KindOf(err) == KindConflict {
			return models.User{}, ErrConflict("User with this email already exists")
		}
		return models.User{}, err
	}
	s.Log.Info("user created", zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (models.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return models.User{}, classifyStoreError("get user", err, userNotFound)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, page PageRequest) (Paged[models.User], error) {
	items, err := s.Users.List(ctx, page.window())
	if err != nil {
		return Paged[models.User]{}, classifyStoreError("list users", err, userNotFound)
	}
	total, err := s.Users.Count(ctx)
	if err != nil {
		return Paged[models.User]{}, classifyStoreError("count users", err, userNotFound)
	}
	return newPaged(items, total, page), nil
}

func (s *UserService) Suspend(ctx context.Context, id int64) (models.User, error) {
	return s.setSuspended(ctx, id, true)
}

func (s *UserService) Unsuspend(ctx context.Context, id int64) (models.User, error) {
	return s.setSuspended(ctx, id, false)
}

func (s *UserService) setSuspended(ctx context.Context, id int64, suspended bool) (models.User, error) {
	user, err := s.Users.SetSuspended(ctx, id, suspended)
	if err != nil {
		return models.User{}, classifyStoreError("suspend user", err, userNotFound)
	}
	s.Log.Info("user suspension changed", zap.Int64("user_id", id), zap.Bool("suspended", suspended))
	return user, nil
}

func (s *UserService) Pin(ctx context.Context, id int64) (models.User, error) {
	return s.setPinned(ctx, id, true)
}

func (s *UserService) Unpin(ctx context.Context, id int64) (models.User, error) {
	return s.setPinned(ctx, id, false)
}

func (s *UserService) setPinned(ctx context.Context, id int64, pinned bool) (models.User, error) {
	user, err := s.Users.SetPinned(ctx, id, pinned)
	if err != nil {
		return models.User{}, classifyStoreError("pin user", err, userNotFound)
	}
	return user, nil
}

// Login checks credentials and issues an access token. Suspended accounts are refused.
func (s *UserService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, ErrValidation("Email and password are required")
	}
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		err = classifyStoreError("get user by email", err, userNotFound)
		if KindOf(err) == KindNotFound {
			return LoginResult{}, ErrUnauthorized("Invalid credentials")
		}
		return LoginResult{}, err
	}
	if !s.Tokens.VerifyPassword(password, user.PasswordHash) {
		return LoginResult{}, ErrUnauthorized("Invalid credentials")
	}
	if user.Suspended {
		return LoginResult{}, ErrForbidden("Account suspended")
	}
	token, exp, err := s.Tokens.CreateAccessToken(user.ID, user.Email, user.Admin)
	if err != nil {
		return LoginResult{}, ErrStorage("sign token", err)
	}
	s.Log.Info("user logged in", zap.Int64("user_id", user.ID))
	return LoginResult{User: user, AccessToken: token, ExpiresAt: exp}, nil
}
