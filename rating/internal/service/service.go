package service

import (
	"context"

	"github.com/Astemirdum/article-rating/rating/internal/errs"
	ratingRepo "github.com/Astemirdum/article-rating/rating/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// UnratedSentinel is reported for articles nobody has rated yet. It is never stored.
const UnratedSentinel = 0

type Service struct {
	log  *zap.Logger
	repo ratingRepo.Repository
}

func NewService(repo ratingRepo.Repository, log *zap.Logger) *Service {
	return &Service{
		log:  log.Named("service"),
		repo: repo,
	}
}

func (s *Service) GetRating(ctx context.Context, articleID int) (int, error) {
	rating, err := s.repo.GetRating(ctx, articleID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Debug("article is unrated", zap.Int("article_id", articleID))
			return UnratedSentinel, nil
		}
		return 0, err
	}
	return rating, nil
}

func (s *Service) SetRating(ctx context.Context, articleID, rating int) (int, error) {
	return s.repo.UpsertRating(ctx, articleID, rating)
}
