package handler

import (
	"context"

	"github.com/Astemirdum/article-rating/rating/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type RatingService interface {
	GetRating(ctx context.Context, articleID int) (int, error)
	SetRating(ctx context.Context, articleID, rating int) (int, error)
}

var _ RatingService = (*service.Service)(nil)
