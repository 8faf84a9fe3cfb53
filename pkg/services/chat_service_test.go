package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/chetanya04/Copilot-Clone/pkg/domain"
)

const (
	convID  = "11111111-1111-1111-1111-111111111111"
	ownerID = "user-1"
)

type fakeConversationRepo struct {
	owners   map[string]string
	touched  []string
	touchErr error
	deleted  []string
	created  []domain.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{owners: map[string]string{convID: ownerID}}
}

func (f *fakeConversationRepo) Create(_ context.Context, userID, title string) (*domain.Conversation, error) {
	c := domain.Conversation{ID: uuid.NewString(), UserID: userID, Title: title, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.created = append(f.created, c)
	return &c, nil
}

func (f *fakeConversationRepo) GetOwner(_ context.Context, id string) (string, error) {
	owner, ok := f.owners[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return owner, nil
}

func (f *fakeConversationRepo) ListByUser(_ context.Context, userID string) ([]domain.Conversation, error) {
	return nil, nil
}

func (f *fakeConversationRepo) TouchActivity(_ context.Context, id string) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeConversationRepo) Delete(_ context.Context, id, userID string) error {
	owner, ok := f.owners[id]
	if !ok || owner != userID {
		return domain.ErrNotFound
	}
	delete(f.owners, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeMessageRepo struct {
	messages  []domain.Message
	appendErr error
}

func (f *fakeMessageRepo) Append(_ context.Context, conversationID string, role domain.Role, content, imageURL string) (*domain.Message, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	m := domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		ImageURL:       imageURL,
		CreatedAt:      time.Now().Add(time.Duration(len(f.messages)) * time.Millisecond),
	}
	f.messages = append(f.messages, m)
	return &m, nil
}

func (f *fakeMessageRepo) ListByConversation(_ context.Context, conversationID string) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) ListRecent(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	all, _ := f.ListByConversation(ctx, conversationID)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

type stubTextGenerator struct {
	text    string
	err     error
	history []domain.Message
	called  bool
}

func (s *stubTextGenerator) GenerateText(_ context.Context, prompt string, history []domain.Message) (string, error) {
	s.called = true
	s.history = history
	return s.text, s.err
}

type stubImageGenerator struct {
	url    string
	err    error
	called bool
}

func (s *stubImageGenerator) GenerateImage(_ context.Context, prompt string) (string, error) {
	s.called = true
	return s.url, s.err
}

func TestSendMessage_TextMode(t *testing.T) {
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	textGen := &stubTextGenerator{text: "hi there"}
	svc := NewChatService(convRepo, msgRepo, textGen, &stubImageGenerator{})

	reply, err := svc.SendMessage(context.Background(), ownerID, convID, "hello", false)
	if err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}

	if reply.Role != domain.RoleAssistant || reply.Content != "hi there" {
		t.Errorf("unexpected reply: %+v", reply)
	}
	if reply.ImageURL != "" {
		t.Errorf("text reply should carry no image reference, got %q", reply.ImageURL)
	}

	if len(msgRepo.messages) != 2 {
		t.Fatalf("expected exactly 2 stored messages, got %d", len(msgRepo.messages))
	}
	if msgRepo.messages[0].Role != domain.RoleUser || msgRepo.messages[0].Content != "hello" {
		t.Errorf("first stored message should be the user turn, got %+v", msgRepo.messages[0])
	}
	if msgRepo.messages[1].Role != domain.RoleAssistant || msgRepo.messages[1].Content != "hi there" {
		t.Errorf("second stored message should be the assistant turn, got %+v", msgRepo.messages[1])
	}

	if len(convRepo.touched) != 1 || convRepo.touched[0] != convID {
		t.Errorf("conversation activity not touched: %v", convRepo.touched)
	}
}

func TestSendMessage_TextProviderFailure(t *testing.T) {
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	textGen := &stubTextGenerator{err: errors.New("quota exceeded")}
	svc := NewChatService(convRepo, msgRepo, textGen, &stubImageGenerator{})

	reply, err := svc.SendMessage(context.Background(), ownerID, convID, "hello", false)
	if err != nil {
		t.Fatalf("provider failure must not fail the exchange: %v", err)
	}

	if reply.Content != domain.TextGenerationApology {
		t.Errorf("expected apology content, got %q", reply.Content)
	}
	if len(msgRepo.messages) != 2 {
		t.Fatalf("expected user + apology messages, got %d", len(msgRepo.messages))
	}
	if msgRepo.messages[0].Content != "hello" {
		t.Errorf("user message must be persisted before generation, got %+v", msgRepo.messages[0])
	}
}

func TestSendMessage_ImageMode(t *testing.T) {
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	textGen := &stubTextGenerator{}
	imageGen := &stubImageGenerator{url: "https://img/abc"}
	svc := NewChatService(convRepo, msgRepo, textGen, imageGen)

	reply, err := svc.SendMessage(context.Background(), ownerID, convID, "draw a cat", true)
	if err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}

	want := fmt.Sprintf("I've generated an image based on: %q", "draw a cat")
	if reply.Content != want {
		t.Errorf("content = %q, want %q", reply.Content, want)
	}
	if reply.ImageURL != "https://img/abc" {
		t.Errorf("image reference = %q, want https://img/abc", reply.ImageURL)
	}
	if textGen.called {
		t.Error("image mode must not call the text provider")
	}
}

func TestSendMessage_ImageProviderFailure(t *testing.T) {
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	imageGen := &stubImageGenerator{err: errors.New("boom")}
	svc := NewChatService(convRepo, msgRepo, &stubTextGenerator{}, imageGen)

	reply, err := svc.SendMessage(context.Background(), ownerID, convID, "draw a cat", true)
	if err != nil {
		t.Fatalf("provider failure must not fail the exchange: %v", err)
	}

	if reply.Content != domain.ImageGenerationApology {
		t.Errorf("expected apology content, got %q", reply.Content)
	}
	if reply.ImageURL != "" {
		t.Errorf("failed image generation must not carry a reference, got %q", reply.ImageURL)
	}
}

func TestSendMessage_OwnershipDenied(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		conversationID string
	}{
		{"foreign owner", "user-2", convID},
		{"missing conversation", ownerID, "22222222-2222-2222-2222-222222222222"},
		{"malformed id", ownerID, "not-a-uuid"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			convRepo := newFakeConversationRepo()
			msgRepo := &fakeMessageRepo{}
			svc := NewChatService(convRepo, msgRepo, &stubTextGenerator{text: "hi"}, &stubImageGenerator{})

			_, err := svc.SendMessage(context.Background(), test.userID, test.conversationID, "hello", false)
			if !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if len(msgRepo.messages) != 0 {
				t.Errorf("denied send must not store messages, got %d", len(msgRepo.messages))
			}
		})
	}
}

func TestSendMessage_UserMessageWriteFailureIsFatal(t *testing.T) {
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{appendErr: errors.New("disk full")}
	textGen := &stubTextGenerator{text: "hi"}
	svc := NewChatService(convRepo, msgRepo, textGen, &stubImageGenerator{})

	if _, err := svc.SendMessage(context.Background(), ownerID, convID, "hello", false); err == nil {
		t.Fatal("expected error when the user message cannot be persisted")
	}
	if textGen.called {
		t.Error("generation must not be attempted after a failed user-message write")
	}
}

func TestSendMessage_TouchFailureIsSwallowed(t *testing.T) {
	convRepo := newFakeConversationRepo()
	convRepo.touchErr = errors.New("timeout")
	msgRepo := &fakeMessageRepo{}
	svc := NewChatService(convRepo, msgRepo, &stubTextGenerator{text: "hi"}, &stubImageGenerator{})

	reply, err := svc.SendMessage(context.Background(), ownerID, convID, "hello", false)
	if err != nil {
		t.Fatalf("activity-touch failure must not fail the exchange: %v", err)
	}
	if reply == nil || reply.Content != "hi" {
		t.Errorf("unexpected reply: %+v", reply)
	}
}

func TestSendMessage_HistoryIncludesJustAppendedUserMessage(t *testing.T) {
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	textGen := &stubTextGenerator{text: "sure"}
	svc := NewChatService(convRepo, msgRepo, textGen, &stubImageGenerator{})

	if _, err := svc.SendMessage(context.Background(), ownerID, convID, "hello", false); err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}

	if len(textGen.history) != 1 || textGen.history[0].Content != "hello" {
		t.Errorf("provider history should contain the just-appended user message, got %+v", textGen.history)
	}
}

func TestCreateConversation_DefaultsTitle(t *testing.T) {
	convRepo := newFakeConversationRepo()
	svc := NewChatService(convRepo, &fakeMessageRepo{}, &stubTextGenerator{}, &stubImageGenerator{})

	conversation, err := svc.CreateConversation(context.Background(), ownerID, "")
	if err != nil {
		t.Fatalf("CreateConversation returned error: %v", err)
	}
	if conversation.Title != domain.DefaultConversationTitle {
		t.Errorf("title = %q, want %q", conversation.Title, domain.DefaultConversationTitle)
	}

	conversation, err = svc.CreateConversation(context.Background(), ownerID, "Trip planning")
	if err != nil {
		t.Fatalf("CreateConversation returned error: %v", err)
	}
	if conversation.Title != "Trip planning" {
		t.Errorf("title = %q, want %q", conversation.Title, "Trip planning")
	}
}

func TestDeleteConversation_NonOwner(t *testing.T) {
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	svc := NewChatService(convRepo, msgRepo, &stubTextGenerator{text: "hi"}, &stubImageGenerator{})

	if _, err := svc.SendMessage(context.Background(), ownerID, convID, "hello", false); err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}

	if err := svc.DeleteConversation(context.Background(), "user-2", convID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner delete, got %v", err)
	}

	if _, ok := convRepo.owners[convID]; !ok {
		t.Error("conversation must remain after a denied delete")
	}
	if len(msgRepo.messages) != 2 {
		t.Errorf("messages must remain after a denied delete, got %d", len(msgRepo.messages))
	}

	if err := svc.DeleteConversation(context.Background(), ownerID, convID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	// Repeated delete reports not found instead of crashing.
	if err := svc.DeleteConversation(context.Background(), ownerID, convID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeated delete, got %v", err)
	}
}

func TestGetMessages_OwnerOnly(t *testing.T) {
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	svc := NewChatService(convRepo, msgRepo, &stubTextGenerator{text: "hi there"}, &stubImageGenerator{})

	if _, err := svc.SendMessage(context.Background(), ownerID, convID, "hello", false); err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}

	messages, err := svc.GetMessages(context.Background(), ownerID, convID)
	if err != nil {
		t.Fatalf("GetMessages returned error: %v", err)
	}
	if len(messages) != 2 || messages[0].Content != "hello" || messages[1].Content != "hi there" {
		t.Errorf("unexpected messages: %+v", messages)
	}

	if _, err := svc.GetMessages(context.Background(), "user-2", convID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign caller, got %v", err)
	}
}
