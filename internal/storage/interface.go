package storage

import (
	"context"

	"github.com/gamiempire/sovereign/internal/model"
)

// Storage defines the interface for data persistence. The logical schema
// is backend-independent: accounts keyed by username, an append-only
// auto-sequenced transaction ledger, an append-only audit log, and a
// single overwritable snapshot slot. Backend failures wrap
// model.ErrStorage; a missing key surfaces the entity's not-found error.
type Storage interface {
	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, username string) (*model.Account, error)

	// Transaction ledger operations. AppendTransaction assigns the
	// record's Sequence before returning.
	AppendTransaction(ctx context.Context, record *model.TransactionRecord) error
	ListTransactions(ctx context.Context, username string, limit int) ([]*model.TransactionRecord, error)

	// Audit log operations
	AppendAuditEvent(ctx context.Context, event *model.AuditEvent) error
	ListAuditEvents(ctx context.Context, limit int) ([]*model.AuditEvent, error)

	// Snapshot slot operations
	SaveSnapshot(ctx context.Context, snapshot *model.Snapshot) error
	GetSnapshot(ctx context.Context) (*model.Snapshot, error)
}
