package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"tenders-ai/internal/models"
	"tenders-ai/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// PlaceholderConversationName is replaced by the first user message.
	PlaceholderConversationName = "Nova konverzacija"

	// GreetingMessage seeds every new conversation.
	GreetingMessage = "Pozdravljen! Sem vaš Tenders.AI asistent. Kako vam lahko pomagam danes?"

	// FallbackErrorMessage is appended as the assistant reply when a turn
	// fails for any reason, credential problems included.
	FallbackErrorMessage = "Oprostite, prišlo je do napake. Preverite API ključ in poskusite znova."

	// conversationNameWords caps how many words of the first message become
	// the conversation name.
	conversationNameWords = 4
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrTurnInFlight         = errors.New("a turn is already in flight for this conversation")
	ErrEmptyTurn            = errors.New("a turn needs text or at least one file")
	ErrTenderNotSaved       = errors.New("only bookmarked tenders can be bound as context")
)

// ChatService owns the conversation list and runs the per-conversation
// turn state machine. At most one turn may be in flight per conversation.
type ChatService struct {
	repo        *repository.ConversationRepository
	profileRepo *repository.ProfileRepository
	ledger      *LedgerService
	llm         Generator
	tenders     map[int]models.Tender
	logger      *zap.Logger

	mu            sync.Mutex
	conversations []models.Conversation
	activeID      string
	inFlight      map[string]bool
}

func NewChatService(
	ctx context.Context,
	repo *repository.ConversationRepository,
	profileRepo *repository.ProfileRepository,
	ledger *LedgerService,
	llm Generator,
	tenders []models.Tender,
	logger *zap.Logger,
) (*ChatService, error) {
	conversations, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]models.Tender, len(tenders))
	for _, t := range tenders {
		byID[t.ID] = t
	}

	s := &ChatService{
		repo:          repo,
		profileRepo:   profileRepo,
		ledger:        ledger,
		llm:           llm,
		tenders:       byID,
		logger:        logger,
		conversations: conversations,
		inFlight:      make(map[string]bool),
	}

	// A session always has at least one conversation to type into.
	if len(s.conversations) == 0 {
		if _, err := s.NewConversation(ctx); err != nil {
			return nil, err
		}
	} else {
		s.activeID = s.conversations[0].ID
	}

	return s, nil
}

// Conversations returns the conversation list, newest first.
func (s *ChatService) Conversations() []models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		out[i] = copyConversation(c)
	}
	return out
}

// ActiveConversation returns the active conversation, if any.
func (s *ChatService) ActiveConversation() (models.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(s.activeID); i >= 0 {
		return copyConversation(s.conversations[i]), true
	}
	return models.Conversation{}, false
}

func (s *ChatService) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(id) < 0 {
		return ErrConversationNotFound
	}
	s.activeID = id
	return nil
}

// NewConversation creates a conversation seeded with the assistant
// greeting, inserts it at the front and makes it active.
func (s *ChatService) NewConversation(ctx context.Context) (models.Conversation, error) {
	conv := models.Conversation{
		ID:   uuid.NewString(),
		Name: PlaceholderConversationName,
		Messages: []models.Message{
			{Sender: models.SenderAssistant, Text: GreetingMessage},
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]models.Conversation{conv}, s.conversations...)
	if err := s.persist(ctx, next); err != nil {
		return models.Conversation{}, err
	}
	s.activeID = conv.ID
	return copyConversation(conv), nil
}

// Rename sets the conversation display name; the text is not validated.
func (s *ChatService) Rename(ctx context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrConversationNotFound
	}

	next := s.copyAll()
	next[i].Name = name
	return s.persist(ctx, next)
}

// Delete removes a conversation. Deleting the active conversation clears
// the active selection. Confirmation is the caller's responsibility.
func (s *ChatService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(s.conversations) {
		return ErrConversationNotFound
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	if s.activeID == id {
		s.activeID = ""
	}
	return nil
}

// SetContextTender toggles the tender binding of a conversation: binding
// the already-bound tender unbinds it, any other bookmarked tender
// replaces the binding.
func (s *ChatService) SetContextTender(ctx context.Context, conversationID string, tenderID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(conversationID)
	if i < 0 {
		return ErrConversationNotFound
	}

	next := s.copyAll()
	if cur := next[i].ContextTenderID; cur != nil && *cur == tenderID {
		next[i].ContextTenderID = nil
		return s.persist(ctx, next)
	}

	if !s.ledger.IsBookmarked(tenderID) {
		return ErrTenderNotSaved
	}
	id := tenderID
	next[i].ContextTenderID = &id
	return s.persist(ctx, next)
}

// AttachableTenders lists the bookmarked tenders that resolve against the
// catalog, in bookmark order.
func (s *ChatService) AttachableTenders() []models.Tender {
	var out []models.Tender
	for _, b := range s.ledger.Bookmarks() {
		if t, ok := s.tenders[b.TenderID]; ok {
			out = append(out, t)
		}
	}
	return out
}

// SendTurn runs one turn of the conversation state machine: append the
// user message, call the model, append the reply (or the localized
// fallback on failure). The caller snapshots and clears its pending input
// before invoking; attachments must already be filtered through
// FilterSupportedFiles. Blocks for the round-trip; run it in a goroutine
// to keep other conversations interactive.
func (s *ChatService) SendTurn(ctx context.Context, conversationID, text string, files []models.PendingFile) error {
	req, err := s.beginTurn(ctx, conversationID, text, files)
	if err != nil {
		return err
	}

	reply, genErr := s.llm.Generate(ctx, req)
	if genErr != nil {
		s.logger.Error("Model turn failed",
			zap.String("conversation_id", conversationID),
			zap.Error(genErr),
		)
		reply = FallbackErrorMessage
	}

	return s.finishTurn(ctx, conversationID, reply)
}

// beginTurn validates the submission, appends the user message and builds
// the outbound request while marking the conversation in flight.
func (s *ChatService) beginTurn(ctx context.Context, conversationID, text string, files []models.PendingFile) (*GenerateRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(conversationID)
	if i < 0 {
		return nil, ErrConversationNotFound
	}
	if s.inFlight[conversationID] {
		return nil, ErrTurnInFlight
	}
	if strings.TrimSpace(text) == "" && len(files) == 0 {
		return nil, ErrEmptyTurn
	}

	next := s.copyAll()
	conv := &next[i]

	// Only descriptors go on the record; bytes travel to the model once.
	var descriptors []models.MessageFile
	for _, f := range files {
		descriptors = append(descriptors, models.MessageFile{Name: f.Name, Type: f.MIMEType, Size: f.Size})
	}

	var contextID *int
	var contextTender *models.Tender
	if conv.ContextTenderID != nil {
		id := *conv.ContextTenderID
		contextID = &id
		if t, ok := s.tenders[id]; ok {
			tender := t
			contextTender = &tender
		}
	}

	conv.Messages = append(conv.Messages, models.Message{
		Sender:          models.SenderUser,
		Text:            text,
		Files:           descriptors,
		ContextTenderID: contextID,
	})

	if conv.Name == PlaceholderConversationName && strings.TrimSpace(text) != "" {
		conv.Name = deriveConversationName(text)
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to load profile for system instruction", zap.Error(err))
		profile = models.Profile{}
	}

	parts := []GeneratePart{{Text: text}}
	for _, f := range files {
		parts = append(parts, GeneratePart{InlineData: &InlineData{MIMEType: f.MIMEType, Data: f.Data}})
	}

	s.inFlight[conversationID] = true
	return &GenerateRequest{
		SystemInstruction: BuildSystemInstruction(profile, contextTender),
		Parts:             parts,
	}, nil
}

// finishTurn appends the assistant reply. A reply for a conversation that
// was deleted while the request was outstanding is discarded rather than
// resurrecting the conversation.
func (s *ChatService) finishTurn(ctx context.Context, conversationID, reply string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, conversationID)

	i := s.index(conversationID)
	if i < 0 {
		s.logger.Info("Discarding reply for deleted conversation",
			zap.String("conversation_id", conversationID),
		)
		return nil
	}

	next := s.copyAll()
	next[i].Messages = append(next[i].Messages, models.Message{
		Sender: models.SenderAssistant,
		Text:   reply,
	})
	return s.persist(ctx, next)
}

// deriveConversationName takes the first few words of the message, with an
// ellipsis marker when truncated.
func deriveConversationName(text string) string {
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) <= conversationNameWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:conversationNameWords], " ") + "..."
}

// persist writes the whole conversation list and swaps it in on success.
// Callers hold mu.
func (s *ChatService) persist(ctx context.Context, next []models.Conversation) error {
	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("Failed to persist conversations", zap.Error(err))
		return err
	}
	s.conversations = next
	return nil
}

func (s *ChatService) index(id string) int {
	for i, c := range s.conversations {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *ChatService) copyAll() []models.Conversation {
	next := make([]models.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		next[i] = copyConversation(c)
	}
	return next
}

func copyConversation(c models.Conversation) models.Conversation {
	out := c
	out.Messages = make([]models.Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	if c.ContextTenderID != nil {
		id := *c.ContextTenderID
		out.ContextTenderID = &id
	}
	return out
}
