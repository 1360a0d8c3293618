// Package notify fans user facing events out to live subscribers in this process.
package notify

import (
	"fmt"
	"sync"
	"time"
)

//go:generate mockgen -source=notify.go -destination=mock_notify.go -package=notify

const (
	EventPaymentUpdated   = "payment.updated"
	EventChallengeCreated = "challenge.created"
	EventChallengeUpdated = "challenge.updated"
)

type Event struct {
	Type      string    `json:"type"`
	UserID    int       `json:"-"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	EntityID  string    `json:"entity_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Publisher interface {
	Publish(event Event)
}

func PaymentUpdated(userID int, paymentID, status string) Event {
	event := Event{
		Type:      EventPaymentUpdated,
		UserID:    userID,
		Title:     "Payment Update",
		Message:   fmt.Sprintf("Payment status updated to %s", status),
		Status:    status,
		EntityID:  paymentID,
		CreatedAt: time.Now(),
	}
	if status == "confirmed" {
		event.Message = "Your payment has been confirmed! Your challenge is now active."
	}
	return event
}

func ChallengeCreated(userID, challengeID int) Event {
	return Event{
		Type:      EventChallengeCreated,
		UserID:    userID,
		Title:     "Challenge Started",
		Message:   "Your challenge is now active.",
		Status:    "active",
		EntityID:  fmt.Sprint(challengeID),
		CreatedAt: time.Now(),
	}
}

func ChallengeUpdated(userID, challengeID int, status string) Event {
	return Event{
		Type:      EventChallengeUpdated,
		UserID:    userID,
		Title:     "Challenge Update",
		Message:   fmt.Sprintf("Your challenge status has been updated to %s", status),
		Status:    status,
		EntityID:  fmt.Sprint(challengeID),
		CreatedAt: time.Now(),
	}
}

type subscriber struct {
	userID int
	fn     func(Event)
}

type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]subscriber)}
}

// Subscribe registers fn for the user's events until the returned func is called.
// fn runs on the publisher's goroutine and must not block.
func (h *Hub) Subscribe(userID int, fn func(Event)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = subscriber{userID: userID, fn: fn}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.userID == event.UserID {
			sub.fn(event)
		}
	}
}
