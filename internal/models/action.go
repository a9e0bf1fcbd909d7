package models

import "strings"

// Tracker carries the conversation state the host sends with every
// action invocation. Only slots are consumed here.
type Tracker struct {
	SenderID string                 `json:"sender_id"`
	Slots    map[string]interface{} `json:"slots"`
}

// Slot returns the named slot as a trimmed string, or "" when absent
// or not a string.
func (t Tracker) Slot(name string) string {
	v, ok := t.Slots[name]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// ActionRequest is the webhook body the conversational framework posts.
type ActionRequest struct {
	NextAction string  `json:"next_action"`
	Tracker    Tracker `json:"tracker"`
}

// BotMessage is one text message shown to the end user, in order.
type BotMessage struct {
	Text string `json:"text"`
}

const EventSlot = "slot"

// Event is a tracker event returned to the host (slot updates only).
type Event struct {
	Event string      `json:"event"`
	Name  string      `json:"name,omitempty"`
	Value interface{} `json:"value,omitempty"`
}

// NewSlotEvent builds a slot-set event for the host tracker.
func NewSlotEvent(name string, value interface{}) Event {
	return Event{Event: EventSlot, Name: name, Value: value}
}

// ActionResponse is the webhook response body.
type ActionResponse struct {
	Responses []BotMessage `json:"responses"`
	Events    []Event      `json:"events"`
}
