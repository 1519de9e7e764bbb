package mailer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Beyond-Company/Ticketing-backend/internal/config"
)

func TestRenderLanguages(t *testing.T) {
	vars := map[string]any{
		"Name":         "Sara",
		"Title":        "Printer broken",
		"Token":        "ABCD2345",
		"Organization": "Acme",
	}

	subject, body, err := Render(KindTicketSubmitted, "en", vars)
	require.NoError(t, err)
	assert.Equal(t, "[Acme] Ticket received: Printer broken", subject)
	assert.Contains(t, body, "ABCD2345")
	assert.Contains(t, body, "Sara")

	subject, body, err = Render(KindTicketSubmitted, "ar", vars)
	require.NoError(t, err)
	assert.Contains(t, subject, "Printer broken")
	assert.Contains(t, body, "ABCD2345")
}

func TestRenderFallsBackToEnglish(t *testing.T) {
	subject, _, err := Render(KindLoginCode, "fr", map[string]any{
		"Name": "Omar", "Code": "482913", "Minutes": 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Your login code", subject)
}

func TestRenderUnknownKind(t *testing.T) {
	_, _, err := Render(Kind("nope"), "en", nil)
	require.Error(t, err)
}

func TestEnqueueDeliversThroughWorker(t *testing.T) {
	m := NewMailer(config.MailConfig{QueueSize: 4}, zap.NewNop())

	var mu sync.Mutex
	var got []Message
	done := make(chan struct{}, 1)
	m.send = func(msg Message) error {
		mu.Lock()
		got = append(got, msg)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	m.Start()
	defer m.Stop()

	m.Enqueue(Message{To: "a@x.com", Kind: KindTicketAssigned, Lang: "en"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not pick up message")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "a@x.com", got[0].To)
}

func TestEnqueueDropsWhenSaturated(t *testing.T) {
	m := NewMailer(config.MailConfig{QueueSize: 1}, zap.NewNop())
	// Worker not started: the channel holds one message, the rest drop.
	m.Enqueue(Message{To: "first@x.com", Kind: KindTicketCommented})
	m.Enqueue(Message{To: "second@x.com", Kind: KindTicketCommented})

	assert.Len(t, m.queue, 1)
}

func TestSendNowPropagatesError(t *testing.T) {
	m := NewMailer(config.MailConfig{QueueSize: 1}, zap.NewNop())
	m.send = func(Message) error { return errors.New("smtp down") }

	err := m.SendNow(Message{To: "x@x.com", Kind: KindLoginCode})
	require.Error(t, err)
}
