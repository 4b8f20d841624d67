package billing

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/repository"
)

const (
	billNumberPrefix = "INV"
	billDayLayout    = "060102"
)

// RandSource supplies uniform integers in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// GenerateBillNumber formats INV-{YY}{MM}{DD}-{NNN} with a uniform random
// suffix in [0, 999]. Numbers are not checked for uniqueness.
func GenerateBillNumber(now time.Time, rnd RandSource) string {
	if rnd == nil {
		rnd = globalRand{}
	}
	return formatBillNumber(now, int64(rnd.IntN(1000)))
}

func formatBillNumber(now time.Time, n int64) string {
	return fmt.Sprintf("%s-%s-%03d", billNumberPrefix, now.Format(billDayLayout), n)
}

// Numberer mints the number for the next bill
type Numberer interface {
	Next(ctx context.Context, now time.Time) (string, error)
}

// RandomNumberer keeps the random three digit suffix. Two bills on the same
// day collide with probability 1/1000.
type RandomNumberer struct {
	rnd RandSource
}

// NewRandomNumberer uses the process-wide source when rnd is nil
func NewRandomNumberer(rnd RandSource) *RandomNumberer {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &RandomNumberer{rnd: rnd}
}

func (n *RandomNumberer) Next(_ context.Context, now time.Time) (string, error) {
	return GenerateBillNumber(now, n.rnd), nil
}

// SequenceNumberer issues a persisted counter per calendar day, so numbers
// never repeat. The suffix widens past 999 instead of wrapping.
type SequenceNumberer struct {
	seq repository.BillSequenceRepository
}

func NewSequenceNumberer(seq repository.BillSequenceRepository) *SequenceNumberer {
	return &SequenceNumberer{seq: seq}
}

func (n *SequenceNumberer) Next(ctx context.Context, now time.Time) (string, error) {
	next, err := n.seq.Next(ctx, now.Format(billDayLayout))
	if err != nil {
		return "", err
	}
	return formatBillNumber(now, next), nil
}
