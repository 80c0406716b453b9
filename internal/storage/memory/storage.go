package memory

import (
	"context"
	"sync"

	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/storage"
)

// Storage is the in-memory fallback implementation of the storage
// interface. It carries the same logical schema as the Redis backend;
// callers cannot tell which backend is active.
type Storage struct {
	mu sync.RWMutex

	accounts     map[string]*model.Account
	transactions []*model.TransactionRecord
	auditLog     []*model.AuditEvent
	snapshot     *model.Snapshot
	nextSequence int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:     make(map[string]*model.Account),
		nextSequence: 1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *account
	cp.Assets = append([]string(nil), account.Assets...)
	s.accounts[account.Username] = &cp
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	cp := *account
	cp.Assets = append([]string(nil), account.Assets...)
	return &cp, nil
}

// Transaction ledger operations

func (s *Storage) AppendTransaction(ctx context.Context, record *model.TransactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.Sequence = s.nextSequence
	s.nextSequence++
	cp := *record
	s.transactions = append(s.transactions, &cp)
	return nil
}

func (s *Storage) ListTransactions(ctx context.Context, username string, limit int) ([]*model.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.TransactionRecord
	// Newest first
	for i := len(s.transactions) - 1; i >= 0; i-- {
		record := s.transactions[i]
		if username != "" && record.Username != username {
			continue
		}
		cp := *record
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Audit log operations

func (s *Storage) AppendAuditEvent(ctx context.Context, event *model.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *event
	s.auditLog = append(s.auditLog, &cp)
	return nil
}

func (s *Storage) ListAuditEvents(ctx context.Context, limit int) ([]*model.AuditEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.AuditEvent
	for i := len(s.auditLog) - 1; i >= 0; i-- {
		cp := *s.auditLog[i]
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Snapshot slot operations

func (s *Storage) SaveSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *snapshot
	s.snapshot = &cp
	return nil
}

func (s *Storage) GetSnapshot(ctx context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, model.ErrSnapshotNotFound
	}
	cp := *s.snapshot
	return &cp, nil
}
