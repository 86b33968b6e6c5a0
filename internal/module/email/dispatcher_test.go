package email

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingSender captures delivered messages for assertions.
type recordingSender struct {
	mu       sync.Mutex
	messages []Message
	started  chan struct{}
	block    chan struct{}
}

func (r *recordingSender) Send(ctx context.Context, msg Message) error {
	if r.started != nil {
		r.started <- struct{}{}
	}
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *recordingSender) sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func TestDispatcher_DeliversQueuedMessages(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 16, 2, zap.NewNop(), nil)

	for i := 0; i < 5; i++ {
		ok := d.Enqueue(Message{To: "someone@example.com", Template: TemplateInviteUser})
		assert.True(t, ok)
	}
	d.Stop()

	assert.Len(t, sender.sent(), 5)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	// Buffered so deliveries after the test stops receiving cannot park
	// the worker and wedge Stop.
	started := make(chan struct{}, 2)
	sender := &recordingSender{block: block, started: started}
	d := NewDispatcher(sender, 1, 1, zap.NewNop(), nil)

	// First message is picked up by the worker and blocks; the second fills
	// the queue; the third has nowhere to go.
	require.True(t, d.Enqueue(Message{To: "a@example.com"}))
	<-started
	require.True(t, d.Enqueue(Message{To: "b@example.com"}))
	assert.False(t, d.Enqueue(Message{To: "c@example.com"}))

	close(block)
	d.Stop()

	assert.Len(t, sender.sent(), 2)
}

func TestService_InviteUser_RendersTemplate(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 16, 1, zap.NewNop(), nil)
	svc := NewService(d, zap.NewNop())

	svc.InviteUser(context.Background(), InvitePayload{
		To:               "invitee@example.com",
		InviterName:      "Alex Admin",
		OrganizationName: "Acme",
		RoleName:         "MANAGER",
		AcceptURL:        "https://app.example.com/auth/accept-invite?email=invitee@example.com&token=abc",
	})
	d.Stop()

	sent := sender.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "invitee@example.com", sent[0].To)
	assert.Equal(t, TemplateInviteUser, sent[0].Template)
	assert.True(t, strings.Contains(sent[0].Body, "Alex Admin"))
	assert.True(t, strings.Contains(sent[0].Body, "Acme"))
	assert.True(t, strings.Contains(sent[0].Body, "token=abc"))
}

func TestService_InviteAccepted_FansOutToAdmins(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 16, 1, zap.NewNop(), nil)
	svc := NewService(d, zap.NewNop())

	svc.InviteAccepted(context.Background(), AcceptedPayload{
		AdminEmails:      []string{"admin1@example.com", "admin2@example.com"},
		JoinedEmail:      "new.hire@example.com",
		OrganizationName: "Acme",
	})
	d.Stop()

	sent := sender.sent()
	require.Len(t, sent, 2)
	for _, msg := range sent {
		assert.Equal(t, TemplateInviteAcceptedAdmin, msg.Template)
		assert.True(t, strings.Contains(msg.Body, "new.hire@example.com"))
	}
}
