package repository

import (
	"context"

	"tenders-ai/internal/models"
	"tenders-ai/internal/storage"

	"go.uber.org/zap"
)

type ConversationRepository struct {
	store  *storage.Store
	logger *zap.Logger
}

func NewConversationRepository(store *storage.Store, logger *zap.Logger) *ConversationRepository {
	return &ConversationRepository{
		store:  store,
		logger: logger,
	}
}

func (r *ConversationRepository) Load(ctx context.Context) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := r.store.Get(ctx, storage.KeyConversations, &conversations, []models.Conversation{}); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *ConversationRepository) Save(ctx context.Context, conversations []models.Conversation) error {
	if conversations == nil {
		conversations = []models.Conversation{}
	}
	return r.store.Set(ctx, storage.KeyConversations, conversations)
}
