package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/ai"
	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/prompts"
	"github.com/vitalink-health/vitalink-backend/internal/repos"
	"github.com/vitalink-health/vitalink-backend/internal/requestdata"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

const conversationTitleLimit = 50

// ChatRelayInput is an ordered sequence of turns plus an optional region code.
// When ConversationID is nil a conversation is created from the opening turn.
type ChatRelayInput struct {
	ConversationID *uuid.UUID
	Messages       []ai.Message
	Region         string
}

// ChatRelayStream hands the raw upstream SSE body to the handler; the handler
// streams it to the client unmodified and closes it.
type ChatRelayStream struct {
	ConversationID uuid.UUID
	Body           io.ReadCloser
}

type ChatService interface {
	StreamChat(ctx context.Context, in ChatRelayInput) (*ChatRelayStream, error)
	RecordAssistantReply(ctx context.Context, conversationID uuid.UUID, content string) error
	GetUserConversations(ctx context.Context) ([]*types.Conversation, error)
	GetConversationMessages(ctx context.Context, conversationID uuid.UUID) ([]*types.Message, error)
	DeleteConversation(ctx context.Context, conversationID uuid.UUID) error
}

type chatService struct {
	db               *gorm.DB
	log              *logger.Logger
	gateway          ai.Gateway
	userRepo         repos.UserRepo
	conversationRepo repos.ConversationRepo
	messageRepo      repos.MessageRepo
}

func NewChatService(
	db *gorm.DB,
	log *logger.Logger,
	gateway ai.Gateway,
	userRepo repos.UserRepo,
	conversationRepo repos.ConversationRepo,
	messageRepo repos.MessageRepo,
) ChatService {
	serviceLog := log.With("service", "ChatService")
	return &chatService{
		db:               db,
		log:              serviceLog,
		gateway:          gateway,
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
	}
}

func (cs *chatService) StreamChat(ctx context.Context, in ChatRelayInput) (*ChatRelayStream, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}

	region := in.Region
	if region == "" {
		if user, err := cs.userRepo.GetByID(ctx, nil, rd.UserID); err == nil {
			region = user.Region
		}
	}

	conversation, err := cs.resolveConversation(ctx, rd.UserID, in)
	if err != nil {
		return nil, err
	}

	// Persist the caller's newest user turn before relaying; the assistant
	// turn is recorded by the handler once the stream completes.
	if n := len(in.Messages); n > 0 && in.Messages[n-1].Role == "user" {
		userID := rd.UserID
		msg := &types.Message{
			ConversationID: conversation.ID,
			UserID:         &userID,
			Role:           "user",
			Content:        in.Messages[n-1].Content,
		}
		if _, err := cs.messageRepo.CreateMessages(ctx, nil, []*types.Message{msg}); err != nil {
			return nil, err
		}
	}

	req := ai.ChatRequest{
		Messages: append([]ai.Message{{Role: "system", Content: prompts.ChatSystemPrompt(region)}}, in.Messages...),
	}
	body, err := cs.gateway.ChatStream(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ChatRelayStream{ConversationID: conversation.ID, Body: body}, nil
}

func (cs *chatService) resolveConversation(ctx context.Context, userID uuid.UUID, in ChatRelayInput) (*types.Conversation, error) {
	if in.ConversationID != nil {
		conversation, err := cs.conversationRepo.GetByID(ctx, nil, *in.ConversationID)
		if err != nil || conversation.UserID != userID {
			return nil, fmt.Errorf("conversation not found")
		}
		return conversation, nil
	}

	title := ""
	for _, msg := range in.Messages {
		if msg.Role == "user" {
			title = truncateTitle(msg.Content)
			break
		}
	}
	conversation := &types.Conversation{
		UserID: userID,
		Title:  title,
		Mode:   "general",
	}
	if err := cs.conversationRepo.Create(ctx, nil, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

func truncateTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= conversationTitleLimit {
		return content
	}
	return string(runes[:conversationTitleLimit])
}

func (cs *chatService) RecordAssistantReply(ctx context.Context, conversationID uuid.UUID, content string) error {
	msg := &types.Message{
		ConversationID: conversationID,
		Role:           "assistant",
		Content:        content,
	}
	if _, err := cs.messageRepo.CreateMessages(ctx, nil, []*types.Message{msg}); err != nil {
		return err
	}
	if err := cs.conversationRepo.Touch(ctx, nil, conversationID); err != nil {
		cs.log.Warn("Failed to touch conversation after assistant reply", "error", err, "conversationID", conversationID)
	}
	return nil
}

func (cs *chatService) GetUserConversations(ctx context.Context) ([]*types.Conversation, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	return cs.conversationRepo.GetByUserID(ctx, nil, rd.UserID)
}

func (cs *chatService) GetConversationMessages(ctx context.Context, conversationID uuid.UUID) ([]*types.Message, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	conversation, err := cs.conversationRepo.GetByID(ctx, nil, conversationID)
	if err != nil || conversation.UserID != rd.UserID {
		return nil, fmt.Errorf("conversation not found")
	}
	return cs.messageRepo.GetByConversationID(ctx, nil, conversationID)
}

func (cs *chatService) DeleteConversation(ctx context.Context, conversationID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("not authenticated")
	}
	conversation, err := cs.conversationRepo.GetByID(ctx, nil, conversationID)
	if err != nil || conversation.UserID != rd.UserID {
		return fmt.Errorf("conversation not found")
	}
	return cs.conversationRepo.Delete(ctx, nil, conversationID)
}
