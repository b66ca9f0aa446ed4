package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEventKind names the committed operation a LedgerEvent describes.
type LedgerEventKind string

const (
	EventDeposit       LedgerEventKind = "deposit"
	EventWithdraw      LedgerEventKind = "withdraw"
	EventTransfer      LedgerEventKind = "transfer"
	EventStatusChanged LedgerEventKind = "account.status_changed"
	EventAccountOpened LedgerEventKind = "account.opened"
)

// LedgerEvent is emitted after a unit of work commits.
type LedgerEvent struct {
	Kind        LedgerEventKind `json:"kind"`
	FromAccount string          `json:"fromAccount,omitempty"`
	ToAccount   string          `json:"toAccount,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
	Status      string          `json:"status,omitempty"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// LedgerEventPublisher delivers committed ledger events to downstream consumers.
// Implementations must not block the caller for long; a failed publish never undoes a commit.
type LedgerEventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event LedgerEvent) error
}
