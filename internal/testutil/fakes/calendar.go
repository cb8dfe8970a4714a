package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
)

// Calendar keeps events in memory, keyed by event id.
type Calendar struct {
	mu     sync.Mutex
	next   int
	Events map[string]absence.AbsenceRequest
	Err    error
}

func NewCalendar() *Calendar {
	return &Calendar{Events: make(map[string]absence.AbsenceRequest)}
}

func (c *Calendar) CreateEvent(ctx context.Context, a absence.AbsenceRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return "", c.Err
	}
	c.next++
	id := fmt.Sprintf("evt-%d", c.next)
	c.Events[id] = a
	return id, nil
}

func (c *Calendar) UpdateEvent(ctx context.Context, eventID string, a absence.AbsenceRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Events[eventID] = a
	return nil
}

func (c *Calendar) DeleteEvent(ctx context.Context, eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	delete(c.Events, eventID)
	return nil
}

func (c *Calendar) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Events)
}
