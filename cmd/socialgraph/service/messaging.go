package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/linkhive/socialgraph/common/logger"
)

// MessagingService owns conversations and messages
type MessagingService struct {
	conversations ConversationStore
	members       MemberStore
	fanout        *FanoutService
	log           *logger.Logger
}

// NewMessagingService creates a new messaging service
func NewMessagingService(conversations ConversationStore, members MemberStore, fanout *FanoutService, log *logger.Logger) *MessagingService {
	return &MessagingService{
		conversations: conversations,
		members:       members,
		fanout:        fanout,
		log:           log,
	}
}

// StartConversation creates a conversation between two members along
// with its first message. At most one conversation exists per member
// pair; a second attempt in either direction fails with ConflictError.
func (s *MessagingService) StartConversation(ctx context.Context, authorID, recipientID uuid.UUID, firstMessage string) (*models.Conversation, error) {
	if authorID == recipientID {
		return nil, &models.ValidationError{Field: "recipient_id", Reason: "cannot message self"}
	}
	if firstMessage == "" {
		return nil, &models.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	if _, err := s.members.Get(ctx, recipientID); err != nil {
		return nil, err
	}

	conv, err := s.conversations.Create(ctx, authorID, recipientID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       authorID,
		ReceiverID:     recipientID,
		Content:        firstMessage,
	}
	if err := s.conversations.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.log.Info("conversation started", "conversation_id", conv.ID, "author", authorID, "recipient", recipientID)
	s.fanout.ConversationCreated(conv)
	s.fanout.MessageAdded(conv, msg)
	return conv, nil
}

// GetConversation retrieves a conversation. Participants only.
func (s *MessagingService) GetConversation(ctx context.Context, conversationID, actingMember uuid.UUID) (*models.Conversation, error) {
	conv, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Involves(actingMember) {
		return nil, &models.AuthorizationError{Action: "read this conversation"}
	}
	return conv, nil
}

// ListConversations retrieves the conversations a member is a party
// to, newest first.
func (s *MessagingService) ListConversations(ctx context.Context, memberID uuid.UUID) ([]*models.Conversation, error) {
	return s.conversations.ListForMember(ctx, memberID)
}

// SendMessage appends a message to a conversation. Participants only.
func (s *MessagingService) SendMessage(ctx context.Context, conversationID, senderID uuid.UUID, content string) (*models.Message, error) {
	if content == "" {
		return nil, &models.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	conv, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Involves(senderID) {
		return nil, &models.AuthorizationError{Action: "send to this conversation"}
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     conv.OtherEnd(senderID),
		Content:        content,
	}
	if err := s.conversations.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.fanout.MessageAdded(conv, msg)
	return msg, nil
}

// MarkMessageRead flips a message's read flag. Only the receiver may
// mark it, and a republish happens only when this call performed the
// false to true transition.
func (s *MessagingService) MarkMessageRead(ctx context.Context, messageID, actingMember uuid.UUID) (*models.Message, error) {
	msg, err := s.conversations.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.ReceiverID != actingMember {
		return nil, &models.AuthorizationError{Action: "mark this message read"}
	}

	msg, changed, err := s.conversations.MarkMessageRead(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if changed {
		s.fanout.MessageRead(msg)
	}
	return msg, nil
}

// ListMessages retrieves a conversation's messages, oldest first.
// Participants only.
func (s *MessagingService) ListMessages(ctx context.Context, conversationID, actingMember uuid.UUID) ([]*models.Message, error) {
	conv, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Involves(actingMember) {
		return nil, &models.AuthorizationError{Action: "read this conversation"}
	}
	return s.conversations.ListMessages(ctx, conversationID)
}
