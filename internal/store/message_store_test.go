package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/models"
	"github.com/velorahq/velora-backend/internal/testutil"
)

func TestMarkMessageRead(t *testing.T) {
	st := New(testutil.NewDB(t))
	user := seedUser(t, st)

	message := &models.Message{
		UserID:     user.ID,
		SenderRole: models.SenderStaff,
		Body:       "Your appointment is confirmed.",
	}
	if err := st.CreateMessage(message); err != nil {
		t.Fatalf("create message: %v", err)
	}
	if message.IsRead {
		t.Fatalf("new message must start unread")
	}

	if err := st.MarkMessageRead(message.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	got, err := st.GetMessage(message.ID)
	if err != nil {
		t.Fatalf("get message: %v", err)
	}
	if !got.IsRead {
		t.Fatalf("message still unread after MarkMessageRead")
	}
	if got.Body != message.Body {
		t.Fatalf("body changed: %q", got.Body)
	}
}

func TestMarkMessageReadNotFound(t *testing.T) {
	st := New(testutil.NewDB(t))

	if err := st.MarkMessageRead(uuid.New()); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("err = %v, want ErrMessageNotFound", err)
	}
}

func TestListMessagesScoping(t *testing.T) {
	st := New(testutil.NewDB(t))
	alice := seedUser(t, st)
	bob := seedUser(t, st)

	for _, m := range []*models.Message{
		{UserID: alice.ID, SenderRole: models.SenderCustomer, Body: "Do you carry the clay mask?"},
		{UserID: alice.ID, SenderRole: models.SenderStaff, Body: "We do, back in stock Friday."},
		{UserID: bob.ID, SenderRole: models.SenderCustomer, Body: "Need to move my booking."},
	} {
		if err := st.CreateMessage(m); err != nil {
			t.Fatalf("create message: %v", err)
		}
	}

	messages, total, err := st.ListMessagesForUser(alice.ID, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(messages) != 2 {
		t.Fatalf("got %d messages (total %d), want 2", len(messages), total)
	}
	for _, m := range messages {
		if m.UserID != alice.ID {
			t.Fatalf("leaked message from another thread: %+v", m)
		}
	}

	_, allTotal, err := st.ListAllMessages(20, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if allTotal != 3 {
		t.Fatalf("admin listing total = %d, want 3", allTotal)
	}
}
