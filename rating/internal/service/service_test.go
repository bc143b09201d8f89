package service_test

import (
	"context"
	"testing"

	"github.com/Astemirdum/article-rating/rating/internal/errs"
	repo_mocks "github.com/Astemirdum/article-rating/rating/internal/repository/mocks"
	"github.com/Astemirdum/article-rating/rating/internal/service"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_GetRating(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *repo_mocks.MockRepository, articleID int)

	tests := []struct {
		name         string
		articleID    int
		mockBehavior mockBehavior
		want         int
		wantErr      string
	}{
		{
			name:      "stored",
			articleID: 42,
			mockBehavior: func(r *repo_mocks.MockRepository, articleID int) {
				r.EXPECT().GetRating(context.Background(), articleID).Return(4, nil)
			},
			want: 4,
		},
		{
			name:      "unrated",
			articleID: 7,
			mockBehavior: func(r *repo_mocks.MockRepository, articleID int) {
				r.EXPECT().GetRating(context.Background(), articleID).Return(0, errs.ErrNotFound)
			},
			want: service.UnratedSentinel,
		},
		{
			name:      "db failure",
			articleID: 7,
			mockBehavior: func(r *repo_mocks.MockRepository, articleID int) {
				r.EXPECT().GetRating(context.Background(), articleID).Return(0, errors.New("connection refused"))
			},
			wantErr: "connection refused",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			repo := repo_mocks.NewMockRepository(c)
			tt.mockBehavior(repo, tt.articleID)

			svc := service.NewService(repo, zap.NewNop())
			got, err := svc.GetRating(context.Background(), tt.articleID)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestService_SetRating(t *testing.T) {
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)
	gomock.InOrder(
		repo.EXPECT().UpsertRating(context.Background(), 1, 3).Return(3, nil),
		repo.EXPECT().UpsertRating(context.Background(), 1, 5).Return(5, nil),
	)

	svc := service.NewService(repo, zap.NewNop())
	got, err := svc.SetRating(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Equal(t, 3, got)

	got, err = svc.SetRating(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Equal(t, 5, got)
}
