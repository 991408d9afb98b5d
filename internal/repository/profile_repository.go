package repository

import (
	"context"

	"tenders-ai/internal/models"
	"tenders-ai/internal/storage"

	"go.uber.org/zap"
)

type ProfileRepository struct {
	store  *storage.Store
	logger *zap.Logger
}

func NewProfileRepository(store *storage.Store, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		store:  store,
		logger: logger,
	}
}

func (r *ProfileRepository) Load(ctx context.Context) (models.Profile, error) {
	var profile models.Profile
	if err := r.store.Get(ctx, storage.KeyUserProfile, &profile, models.Profile{}); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile models.Profile) error {
	return r.store.Set(ctx, storage.KeyUserProfile, profile)
}
