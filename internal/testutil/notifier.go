package testutil

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// Notifier запоминает отправленные уведомления
type Notifier struct {
	mu   sync.Mutex
	sent []notifier.Message
}

func (n *Notifier) Notify(_ context.Context, msg notifier.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

// Sent возвращает копию отправленных уведомлений
func (n *Notifier) Sent() []notifier.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifier.Message(nil), n.sent...)
}
