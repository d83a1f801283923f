package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/types"
)

var ErrInvalidUser = errors.New("user id and email are required")

type UpsertUserInput struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type UserService interface {
	UpsertUser(ctx context.Context, input UpsertUserInput) (*types.User, error)
	GetUser(ctx context.Context, userID string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	now      func() time.Time
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// UpsertUser records a sign-in. The user id is the OAuth subject and never
// changes; profile fields are refreshed on every login. Admin status is
// managed separately and survives the upsert.
func (us *userService) UpsertUser(ctx context.Context, input UpsertUserInput) (*types.User, error) {
	id := strings.TrimSpace(input.ID)
	email := strings.TrimSpace(input.Email)
	if id == "" || email == "" {
		return nil, ErrInvalidUser
	}

	user := &types.User{
		ID:          id,
		Email:       email,
		Name:        strings.TrimSpace(input.Name),
		Picture:     strings.TrimSpace(input.Picture),
		LastLoginAt: us.now(),
	}
	if err := us.userRepo.Upsert(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	stored, err := us.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return stored, nil
}

func (us *userService) GetUser(ctx context.Context, userID string) (*types.User, error) {
	return us.userRepo.GetByID(ctx, nil, userID)
}
