// Package notify delivers bills to customers over pluggable channels.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrInvalidRecipient means the address is malformed for the channel
	ErrInvalidRecipient = errors.New("notify: invalid recipient")
	// ErrUnknownChannel means no sender is registered under the name
	ErrUnknownChannel = errors.New("notify: unknown channel")
	// ErrNotConfigured means the channel exists but lacks credentials
	ErrNotConfigured = errors.New("notify: channel not configured")
)

// Attachment is a file sent alongside a message
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is a channel-neutral notification
type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Delivery describes an accepted message
type Delivery struct {
	Channel   string    `json:"channel"`
	To        string    `json:"to"`
	Reference string    `json:"reference"`
	SentAt    time.Time `json:"sentAt"`
	Simulated bool      `json:"simulated"`
}

// Sender delivers messages over one channel. A simulated sender and a real
// integration are interchangeable behind it.
type Sender interface {
	Channel() string
	Send(ctx context.Context, msg Message) (*Delivery, error)
}

// Registry looks senders up by channel name
type Registry struct {
	senders map[string]Sender
}

func NewRegistry(senders ...Sender) *Registry {
	r := &Registry{senders: make(map[string]Sender, len(senders))}
	for _, s := range senders {
		r.senders[s.Channel()] = s
	}
	return r
}

// Get returns the sender for channel or ErrUnknownChannel
func (r *Registry) Get(channel string) (Sender, error) {
	s, ok := r.senders[channel]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
	return s, nil
}

// Channels lists registered channel names in order
func (r *Registry) Channels() []string {
	names := make([]string, 0, len(r.senders))
	for name := range r.senders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
