package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/chetanya04/Copilot-Clone/pkg/domain"
	"github.com/chetanya04/Copilot-Clone/pkg/logger"
)

type ConversationRepository interface {
	Create(ctx context.Context, userID, title string) (*domain.Conversation, error)
	GetOwner(ctx context.Context, id string) (string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Conversation, error)
	TouchActivity(ctx context.Context, id string) error
	Delete(ctx context.Context, id, userID string) error
}

type MessageRepository interface {
	Append(ctx context.Context, conversationID string, role domain.Role, content, imageURL string) (*domain.Message, error)
	ListByConversation(ctx context.Context, conversationID string) ([]domain.Message, error)
	ListRecent(ctx context.Context, conversationID string, limit int) ([]domain.Message, error)
}

type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, history []domain.Message) (string, error)
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type chatService struct {
	conversationRepo ConversationRepository
	messageRepo      MessageRepository
	textGenerator    TextGenerator
	imageGenerator   ImageGenerator
	contextBuilder   *contextBuilder
}

func NewChatService(
	conversationRepo ConversationRepository,
	messageRepo MessageRepository,
	textGenerator TextGenerator,
	imageGenerator ImageGenerator,
) *chatService {
	return &chatService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		textGenerator:    textGenerator,
		imageGenerator:   imageGenerator,
		contextBuilder:   newContextBuilder(messageRepo, historyLimit),
	}
}

// SendMessage runs one exchange: verify ownership, persist the user message,
// generate a reply, persist it, refresh conversation activity. The user
// message is written before any generation is attempted so the input survives
// a provider outage, and generation failures are absorbed into a fixed
// apology reply instead of failing the exchange.
func (s *chatService) SendMessage(ctx context.Context, userID, conversationID, content string, imageRequested bool) (*domain.Message, error) {
	if err := s.checkOwnership(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	if _, err := s.messageRepo.Append(ctx, conversationID, domain.RoleUser, content, ""); err != nil {
		return nil, fmt.Errorf("saving user message: %w", err)
	}

	result := s.generate(ctx, domain.GenerationRequest{
		ConversationID: conversationID,
		Prompt:         content,
		ImageRequested: imageRequested,
	})

	assistantMessage, err := s.messageRepo.Append(ctx, conversationID, domain.RoleAssistant, result.Text, result.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("saving assistant message: %w", err)
	}

	// Best effort; the assistant message already exists.
	if err := s.conversationRepo.TouchActivity(ctx, conversationID); err != nil {
		slog.WarnContext(ctx, "Touching conversation activity failed", "conversationID", conversationID, logger.Err(err))
	}

	return assistantMessage, nil
}

func (s *chatService) generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	if req.ImageRequested {
		return s.generateImage(ctx, req)
	}
	return s.generateText(ctx, req)
}

func (s *chatService) generateImage(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	slog.InfoContext(ctx, "Generating image", "prompt", req.Prompt)

	imageURL, err := s.imageGenerator.GenerateImage(ctx, req.Prompt)
	if err != nil {
		slog.ErrorContext(ctx, "Image generation failed", logger.Err(err))
		return domain.GenerationResult{Text: domain.ImageGenerationApology}
	}

	return domain.GenerationResult{
		Text:     fmt.Sprintf("I've generated an image based on: %q", req.Prompt),
		ImageURL: imageURL,
	}
}

func (s *chatService) generateText(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	history, err := s.contextBuilder.Build(ctx, req.ConversationID)
	if err != nil {
		slog.WarnContext(ctx, "Building context failed, generating without history", logger.Err(err))
		history = nil
	}

	slog.InfoContext(ctx, "Generating text response", "prompt", req.Prompt, "historySize", len(history))

	text, err := s.textGenerator.GenerateText(ctx, req.Prompt, history)
	if err != nil {
		slog.ErrorContext(ctx, "Text generation failed", logger.Err(err))
		return domain.GenerationResult{Text: domain.TextGenerationApology}
	}

	return domain.GenerationResult{Text: text}
}

func (s *chatService) CreateConversation(ctx context.Context, userID, title string) (*domain.Conversation, error) {
	title, _ = lo.Coalesce(title, domain.DefaultConversationTitle)

	conversation, err := s.conversationRepo.Create(ctx, userID, title)
	if err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}

	slog.InfoContext(ctx, "Conversation created", "conversationID", conversation.ID, "userID", userID)

	return conversation, nil
}

func (s *chatService) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	conversations, err := s.conversationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}

	return conversations, nil
}

func (s *chatService) GetMessages(ctx context.Context, userID, conversationID string) ([]domain.Message, error) {
	if err := s.checkOwnership(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	return messages, nil
}

func (s *chatService) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	if uuid.Validate(conversationID) != nil {
		return domain.ErrNotFound
	}

	if err := s.conversationRepo.Delete(ctx, conversationID, userID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Conversation deleted", "conversationID", conversationID, "userID", userID)

	return nil
}

// checkOwnership collapses a missing conversation and a foreign owner into
// the same outcome so existence is never leaked. It is not transactional
// with the writes that follow; a concurrent delete wins and the cascade
// removes anything written after the check.
func (s *chatService) checkOwnership(ctx context.Context, userID, conversationID string) error {
	if uuid.Validate(conversationID) != nil {
		return domain.ErrNotFound
	}

	ownerID, err := s.conversationRepo.GetOwner(ctx, conversationID)
	if err != nil {
		return err
	}

	if ownerID != userID {
		slog.WarnContext(ctx, "Conversation access denied", "conversationID", conversationID, "userID", userID)
		return domain.ErrNotFound
	}

	return nil
}
