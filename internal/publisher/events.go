package publisher

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
)

// Event is a user interaction forwarded by a map client.
type Event struct {
	Type string `json:"type"` // hover|click|toggle
	ID   string `json:"id"`
}

// EventHandler receives events on the session goroutine.
type EventHandler interface {
	Hover(id string)
	Click(id string)
	ToggleFilter(groupID string)
}

// Poster runs fn on the session goroutine.
type Poster interface {
	Post(fn func()) bool
}

// SubscribeEvents forwards UI events for tripID into loop.
func (p *NATSPublisher) SubscribeEvents(tripID string, loop Poster, h EventHandler) (*nats.Subscription, error) {
	subject := eventSubject(tripID)
	sub, err := p.nc.Subscribe(subject, func(msg *nats.Msg) {
		kind, err := Dispatch(msg.Data, loop, h)
		if p.metrics != nil {
			p.metrics.EventReceived(kind)
		}
		if err != nil {
			log.Printf("event on %s: %v", msg.Subject, err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}
	log.Printf("listening for events on %s", subject)
	return sub, nil
}

// Dispatch decodes one event and posts the matching handler call. It
// returns the event type, or "unknown" when the payload is not usable.
func Dispatch(data []byte, loop Poster, h EventHandler) (string, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return "unknown", fmt.Errorf("decode event: %w", err)
	}
	var fn func()
	switch ev.Type {
	case "hover":
		fn = func() { h.Hover(ev.ID) }
	case "click":
		fn = func() { h.Click(ev.ID) }
	case "toggle":
		if ev.ID == "" {
			return ev.Type, fmt.Errorf("toggle without group id")
		}
		fn = func() { h.ToggleFilter(ev.ID) }
	default:
		return "unknown", fmt.Errorf("unknown event type %q", ev.Type)
	}
	if !loop.Post(fn) {
		return ev.Type, fmt.Errorf("session stopped, dropped %s", ev.Type)
	}
	return ev.Type, nil
}
