package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ChannelWhatsApp = "whatsapp"

// WhatsAppSimulator accepts messages for Indian mobile numbers and logs them
// instead of delivering. It stands in for a real WhatsApp Business client.
type WhatsAppSimulator struct {
	log   *zap.Logger
	delay time.Duration
	now   func() time.Time
}

// NewWhatsAppSimulator creates the simulated sender. delay mimics network
// latency and is cut short by context cancellation.
func NewWhatsAppSimulator(log *zap.Logger, delay time.Duration) *WhatsAppSimulator {
	if log == nil {
		log = zap.NewNop()
	}
	return &WhatsAppSimulator{log: log, delay: delay, now: time.Now}
}

func (s *WhatsAppSimulator) Channel() string { return ChannelWhatsApp }

func (s *WhatsAppSimulator) Send(ctx context.Context, msg Message) (*Delivery, error) {
	to, err := NormalizeIndianMobile(msg.To)
	if err != nil {
		return nil, err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	d := &Delivery{
		Channel:   ChannelWhatsApp,
		To:        to,
		Reference: "wa-sim-" + uuid.NewString(),
		SentAt:    s.now(),
		Simulated: true,
	}
	s.log.Info("whatsapp message simulated",
		zap.String("to", to),
		zap.String("reference", d.Reference),
		zap.Int("attachments", len(msg.Attachments)),
	)
	return d, nil
}

// NormalizeIndianMobile accepts a 10 digit number with an optional +91 or
// 91 prefix and separators, and returns it as +91XXXXXXXXXX
func NormalizeIndianMobile(raw string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '(', r == ')', r == '+':
			return -1
		}
		return 'x'
	}, strings.TrimSpace(raw))

	if strings.ContainsRune(digits, 'x') {
		return "", fmt.Errorf("%w: %q", ErrInvalidRecipient, raw)
	}
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if len(digits) != 10 {
		return "", fmt.Errorf("%w: %q must have 10 digits", ErrInvalidRecipient, raw)
	}
	return "+91" + digits, nil
}
