package persistence_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/valueobject"
	"github.com/agentdna/agentdna/internal/infrastructure/persistence"
	"github.com/agentdna/agentdna/pkg/errors"
)

func newConversation(t *testing.T, id, ownerID string, convType valueobject.ConversationType) *entity.Conversation {
	t.Helper()
	conv, err := entity.NewConversation(id, ownerID, convType)
	if err != nil {
		t.Fatalf("new conversation: %v", err)
	}
	return conv
}

func TestMemoryConversationRepository_CreateAndFind(t *testing.T) {
	repo := persistence.NewMemoryConversationRepository()
	ctx := context.Background()

	conv := newConversation(t, "conv-1", "agent-1", valueobject.TypeCoaching)
	if err := repo.Create(ctx, conv); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.FindByIDAndOwner(ctx, "conv-1", "agent-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.ID() != "conv-1" || found.Type() != valueobject.TypeCoaching {
		t.Errorf("wrong conversation returned: id=%s type=%s", found.ID(), found.Type())
	}
}

func TestMemoryConversationRepository_DuplicateCreateRejected(t *testing.T) {
	repo := persistence.NewMemoryConversationRepository()
	ctx := context.Background()

	conv := newConversation(t, "conv-1", "agent-1", valueobject.TypeGeneral)
	_ = repo.Create(ctx, conv)
	if err := repo.Create(ctx, conv); err == nil {
		t.Fatal("duplicate create must fail")
	}
}

func TestMemoryConversationRepository_ForeignOwnerNotFound(t *testing.T) {
	repo := persistence.NewMemoryConversationRepository()
	ctx := context.Background()

	_ = repo.Create(ctx, newConversation(t, "conv-1", "agent-1", valueobject.TypeGeneral))

	if _, err := repo.FindByIDAndOwner(ctx, "conv-1", "intruder"); !errors.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND for foreign owner, got %v", err)
	}
	if _, err := repo.FindByIDAndOwner(ctx, "missing", "agent-1"); !errors.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND for missing id, got %v", err)
	}
}

func TestMemoryConversationRepository_AppendPreservesOrder(t *testing.T) {
	repo := persistence.NewMemoryConversationRepository()
	ctx := context.Background()

	_ = repo.Create(ctx, newConversation(t, "conv-1", "agent-1", valueobject.TypeGeneral))
	for i := 0; i < 5; i++ {
		role := valueobject.RoleUser
		if i%2 == 1 {
			role = valueobject.RoleAssistant
		}
		msg, err := entity.NewMessage(fmt.Sprintf("m%d", i), "conv-1", role, fmt.Sprintf("turn %d", i))
		if err != nil {
			t.Fatalf("new message: %v", err)
		}
		if err := repo.AppendMessage(ctx, "conv-1", msg); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	conv, err := repo.FindByIDAndOwner(ctx, "conv-1", "agent-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	msgs := conv.Messages()
	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(msgs))
	}
	for i, msg := range msgs {
		if msg.Content() != fmt.Sprintf("turn %d", i) {
			t.Errorf("position %d = %q, want %q", i, msg.Content(), fmt.Sprintf("turn %d", i))
		}
	}
}

func TestMemoryConversationRepository_AppendToMissingConversation(t *testing.T) {
	repo := persistence.NewMemoryConversationRepository()

	msg, _ := entity.NewMessage("m1", "ghost", valueobject.RoleUser, "hello")
	if err := repo.AppendMessage(context.Background(), "ghost", msg); !errors.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestMemoryConversationRepository_ListFiltersAndLimits(t *testing.T) {
	repo := persistence.NewMemoryConversationRepository()
	ctx := context.Background()

	_ = repo.Create(ctx, newConversation(t, "c1", "agent-1", valueobject.TypeCoaching))
	_ = repo.Create(ctx, newConversation(t, "c2", "agent-1", valueobject.TypeSupport))
	_ = repo.Create(ctx, newConversation(t, "c3", "agent-1", valueobject.TypeCoaching))
	_ = repo.Create(ctx, newConversation(t, "other", "agent-2", valueobject.TypeCoaching))

	all, err := repo.ListByOwner(ctx, "agent-1", "", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 conversations for agent-1, got %d", len(all))
	}

	coaching, _ := repo.ListByOwner(ctx, "agent-1", valueobject.TypeCoaching, 0)
	if len(coaching) != 2 {
		t.Errorf("expected 2 coaching conversations, got %d", len(coaching))
	}
	for _, c := range coaching {
		if c.Type() != valueobject.TypeCoaching {
			t.Errorf("type filter leaked %s", c.Type())
		}
	}

	limited, _ := repo.ListByOwner(ctx, "agent-1", "", 1)
	if len(limited) != 1 {
		t.Errorf("expected 1 conversation with limit, got %d", len(limited))
	}
}
