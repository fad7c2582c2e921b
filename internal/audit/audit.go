// Package audit records verification outcomes for compliance review.
// Events carry masked identifiers only; raw phone numbers and names never
// leave the process through this path.
package audit

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"veriname/internal/scoring"
)

// Event is one completed verification.
type Event struct {
	ID          string            `json:"id"`
	At          time.Time         `json:"at"`
	Phone       string            `json:"phone"`
	ClaimedName string            `json:"claimed_name"`
	FinalScore  int               `json:"final_score"`
	RiskTier    scoring.Tier      `json:"risk_tier"`
	Sources     []scoring.SourceID `json:"sources"`
}

// Publisher delivers audit events to wherever compliance reads them.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes audit events to the structured log. It is the
// fallback when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher wraps a logger as a Publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "verification audited",
		"event_id", event.ID,
		"phone", event.Phone,
		"claimed_name", event.ClaimedName,
		"final_score", event.FinalScore,
		"risk_tier", event.RiskTier,
		"sources", event.Sources,
	)
	return nil
}

// MaskPhone keeps the last four digits of a phone number.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// MaskName keeps the first rune of each name token.
func MaskName(name string) string {
	fields := strings.Fields(name)
	for i, f := range fields {
		runes := []rune(f)
		if len(runes) > 1 {
			fields[i] = string(runes[0]) + strings.Repeat("*", len(runes)-1)
		}
	}
	return strings.Join(fields, " ")
}
