package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/ai"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*types.Conversation
	touched       []uuid.UUID
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[uuid.UUID]*types.Conversation)}
}

func (f *fakeConversationRepo) Create(ctx context.Context, tx *gorm.DB, c *types.Conversation) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.conversations[c.ID] = c
	return nil
}

func (f *fakeConversationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Conversation, error) {
	if c, ok := f.conversations[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("record not found")
}

func (f *fakeConversationRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Conversation, error) {
	var out []*types.Conversation
	for _, c := range f.conversations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) Touch(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeConversationRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	delete(f.conversations, id)
	return nil
}

type fakeMessageRepo struct {
	messages []*types.Message
}

func (f *fakeMessageRepo) CreateMessages(ctx context.Context, tx *gorm.DB, msgs []*types.Message) ([]*types.Message, error) {
	f.messages = append(f.messages, msgs...)
	return msgs, nil
}

func (f *fakeMessageRepo) GetByConversationID(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) ([]*types.Message, error) {
	var out []*types.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func newChatService(t *testing.T, gateway ai.Gateway, convRepo *fakeConversationRepo, msgRepo *fakeMessageRepo) ChatService {
	t.Helper()
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
	return NewChatService(nil, testLogger(t), gateway, userRepo, convRepo, msgRepo)
}

func TestStreamChat_CreatesConversationWithTruncatedTitle(t *testing.T) {
	gateway := &fakeGateway{reply: "data: [DONE]\n\n"}
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	svc := newChatService(t, gateway, convRepo, msgRepo)

	longOpening := strings.Repeat("a", 80)
	stream, err := svc.StreamChat(authedContext(uuid.New()), ChatRelayInput{
		Messages: []ai.Message{{Role: "user", Content: longOpening}},
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	defer stream.Body.Close()

	conversation, err := convRepo.GetByID(context.Background(), nil, stream.ConversationID)
	if err != nil {
		t.Fatalf("conversation was not created: %v", err)
	}
	if len(conversation.Title) != 50 {
		t.Errorf("title length = %d, want 50", len(conversation.Title))
	}
	if conversation.Title != longOpening[:50] {
		t.Errorf("title = %q, want first 50 chars of the opening turn", conversation.Title)
	}
}

func TestStreamChat_PersistsUserTurnBeforeRelaying(t *testing.T) {
	gateway := &fakeGateway{reply: "data: [DONE]\n\n"}
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	svc := newChatService(t, gateway, convRepo, msgRepo)

	userID := uuid.New()
	stream, err := svc.StreamChat(authedContext(userID), ChatRelayInput{
		Messages: []ai.Message{{Role: "user", Content: "How much water should I drink?"}},
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	defer stream.Body.Close()

	if len(msgRepo.messages) != 1 {
		t.Fatalf("persisted %d messages, want 1", len(msgRepo.messages))
	}
	msg := msgRepo.messages[0]
	if msg.Role != "user" {
		t.Errorf("role = %q, want user", msg.Role)
	}
	if msg.Content != "How much water should I drink?" {
		t.Errorf("content = %q", msg.Content)
	}
	if msg.UserID == nil || *msg.UserID != userID {
		t.Errorf("message not attributed to the caller")
	}
}

func TestStreamChat_ReusesExistingConversation(t *testing.T) {
	gateway := &fakeGateway{reply: "data: [DONE]\n\n"}
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	svc := newChatService(t, gateway, convRepo, msgRepo)

	userID := uuid.New()
	existing := &types.Conversation{UserID: userID, Title: "earlier chat"}
	if err := convRepo.Create(context.Background(), nil, existing); err != nil {
		t.Fatalf("seeding conversation: %v", err)
	}

	stream, err := svc.StreamChat(authedContext(userID), ChatRelayInput{
		ConversationID: &existing.ID,
		Messages:       []ai.Message{{Role: "user", Content: "follow-up"}},
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	defer stream.Body.Close()

	if stream.ConversationID != existing.ID {
		t.Errorf("ConversationID = %v, want %v", stream.ConversationID, existing.ID)
	}
	if len(convRepo.conversations) != 1 {
		t.Errorf("conversation count = %d, want 1", len(convRepo.conversations))
	}
}

func TestStreamChat_RejectsForeignConversation(t *testing.T) {
	gateway := &fakeGateway{reply: "data: [DONE]\n\n"}
	convRepo := newFakeConversationRepo()
	svc := newChatService(t, gateway, convRepo, &fakeMessageRepo{})

	other := &types.Conversation{UserID: uuid.New(), Title: "not yours"}
	if err := convRepo.Create(context.Background(), nil, other); err != nil {
		t.Fatalf("seeding conversation: %v", err)
	}

	_, err := svc.StreamChat(authedContext(uuid.New()), ChatRelayInput{
		ConversationID: &other.ID,
		Messages:       []ai.Message{{Role: "user", Content: "hello"}},
	})
	if err == nil {
		t.Fatal("expected error for another user's conversation, got nil")
	}
}

func TestStreamChat_GatewayErrorPropagates(t *testing.T) {
	gateway := &fakeGateway{err: ai.ErrMissingCredentials}
	svc := newChatService(t, gateway, newFakeConversationRepo(), &fakeMessageRepo{})

	_, err := svc.StreamChat(authedContext(uuid.New()), ChatRelayInput{
		Messages: []ai.Message{{Role: "user", Content: "hello"}},
	})
	if err == nil {
		t.Fatal("expected gateway error, got nil")
	}
}

func TestRecordAssistantReply_AppendsAndTouches(t *testing.T) {
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	svc := newChatService(t, &fakeGateway{}, convRepo, msgRepo)

	conversationID := uuid.New()
	if err := svc.RecordAssistantReply(context.Background(), conversationID, "Stay hydrated."); err != nil {
		t.Fatalf("RecordAssistantReply: %v", err)
	}
	if len(msgRepo.messages) != 1 || msgRepo.messages[0].Role != "assistant" {
		t.Fatalf("messages = %+v, want one assistant message", msgRepo.messages)
	}
	if len(convRepo.touched) != 1 || convRepo.touched[0] != conversationID {
		t.Errorf("touched = %v, want [%v]", convRepo.touched, conversationID)
	}
}
