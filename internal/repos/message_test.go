package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

func TestMessageMarkReadAndUnreadCount(t *testing.T) {
	t.Parallel()
	gdb := newTestDB(t)
	repo := NewMessageRepo(gdb, newTestLogger())

	first := &types.Message{ID: uuid.New(), StudentName: "Sara", Content: "When is the next lesson?"}
	second := &types.Message{ID: uuid.New(), StudentName: "Omar", Content: "Can I get the worksheet?"}
	for _, m := range []*types.Message{first, second} {
		if _, err := repo.Create(context.Background(), m); err != nil {
			t.Fatalf("create message: %v", err)
		}
	}

	unread, err := repo.CountUnread(context.Background())
	if err != nil {
		t.Fatalf("count unread: %v", err)
	}
	if unread != 2 {
		t.Fatalf("unexpected unread count: got=%d want=2", unread)
	}

	updated, err := repo.MarkRead(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !updated.IsRead {
		t.Fatalf("expected message to be read after MarkRead")
	}

	unread, err = repo.CountUnread(context.Background())
	if err != nil {
		t.Fatalf("count unread: %v", err)
	}
	if unread != 1 {
		t.Fatalf("unexpected unread count after mark: got=%d want=1", unread)
	}
}

func TestMessageListUnreadFilter(t *testing.T) {
	t.Parallel()
	gdb := newTestDB(t)
	repo := NewMessageRepo(gdb, newTestLogger())

	read := &types.Message{ID: uuid.New(), StudentName: "A", Content: "read one", IsRead: true}
	if _, err := repo.Create(context.Background(), read); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(context.Background(), &types.Message{ID: uuid.New(), StudentName: "B", Content: "unread one"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	unreadOnly := false
	msgs, total, err := repo.List(context.Background(), MessageFilter{IsRead: &unreadOnly, Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(msgs) != 1 {
		t.Fatalf("unexpected filtered list: total=%d rows=%d want 1/1", total, len(msgs))
	}
	if msgs[0].StudentName != "B" {
		t.Fatalf("unexpected row: got=%q want=%q", msgs[0].StudentName, "B")
	}
}
