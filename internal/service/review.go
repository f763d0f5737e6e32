package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vintagecoffee/internal/apperr"
	"vintagecoffee/internal/model"
	"vintagecoffee/internal/policy"
	"vintagecoffee/internal/store"
)

// ReviewService holds customer reviews. Reads are public; writing is
// customer-only.
type ReviewService struct {
	store store.Store
	log   *zap.Logger
}

func NewReviewService(st store.Store, log *zap.Logger) *ReviewService {
	return &ReviewService{store: st, log: log}
}

func (s *ReviewService) List(ctx context.Context) ([]model.Review, error) {
	return store.View[[]model.Review](ctx, s.store, store.Reviews)
}

func (s *ReviewService) Create(ctx context.Context, actor *model.Actor, rating int, comment string) (model.Review, error) {
	if err := policy.Authorize(actor, model.RoleCustomer, ""); err != nil {
		return model.Review{}, err
	}
	if rating < 1 || rating > 5 {
		return model.Review{}, apperr.New(apperr.Validation, "rating must be between 1 and 5")
	}
	review := model.Review{
		ID:        uuid.NewString(),
		UserID:    actor.ID,
		Author:    actor.Name,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: time.Now().UTC(),
	}
	_, err := store.Mutate(ctx, s.store, store.Reviews, func(reviews *[]model.Review) error {
		*reviews = append(*reviews, review)
		return nil
	})
	if err != nil {
		return model.Review{}, err
	}
	s.log.Info("review submitted", zap.String("review_id", review.ID), zap.Int("rating", rating))
	return review, nil
}
