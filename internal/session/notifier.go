package session

import (
	"sync"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

// Notifier receives user-facing notifications.
type Notifier interface {
	Notify(n models.Notification)
}

// Collector buffers notifications until they are drained into a response.
type Collector struct {
	mu    sync.Mutex
	items []models.Notification
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Notify(n models.Notification) {
	if n.Variant == "" {
		n.Variant = models.NotificationDefault
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

// Drain returns the buffered notifications and clears the buffer.
func (c *Collector) Drain() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.items
	c.items = nil
	if out == nil {
		out = []models.Notification{}
	}
	return out
}

func Info(title, description string) models.Notification {
	return models.Notification{Title: title, Description: description, Variant: models.NotificationDefault}
}

func Destructive(title, description string) models.Notification {
	return models.Notification{Title: title, Description: description, Variant: models.NotificationDestructive}
}
