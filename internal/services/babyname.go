package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/types"
)

type BabyNameService interface {
	List(ctx context.Context, gender, letter, search string) ([]*types.BabyName, error)
	GetBySlug(ctx context.Context, slug string) (*types.BabyName, error)
}

type babyNameService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.BabyNameRepo
}

func NewBabyNameService(db *gorm.DB, log *logger.Logger, repo repos.BabyNameRepo) BabyNameService {
	serviceLog := log.With("service", "BabyNameService")
	return &babyNameService{db: db, log: serviceLog, repo: repo}
}

func (bs *babyNameService) List(ctx context.Context, gender, letter, search string) ([]*types.BabyName, error) {
	names, err := bs.repo.List(ctx, nil, repos.BabyNameFilter{
		Gender: gender,
		Letter: letter,
		Search: search,
	})
	if err != nil {
		return nil, fmt.Errorf("list baby names: %w", err)
	}
	return names, nil
}

// GetBySlug returns nil when the slug is unknown.
func (bs *babyNameService) GetBySlug(ctx context.Context, slug string) (*types.BabyName, error) {
	name, err := bs.repo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, fmt.Errorf("load baby name: %w", err)
	}
	return name, nil
}
