package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/storage"
)

// Storage is the Redis-backed primary implementation of the storage
// interface. Values are JSON; multi-key writes go through pipelines.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance and verifies the connection
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", model.ErrStorage, err)
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return storageErr(err)
	}
	if err := s.client.Set(ctx, accountKey(account.Username), data, 0).Err(); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, storageErr(err)
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, storageErr(err)
	}
	return &account, nil
}

// Transaction ledger operations

func (s *Storage) AppendTransaction(ctx context.Context, record *model.TransactionRecord) error {
	seq, err := s.client.Incr(ctx, transactionSeqKey()).Result()
	if err != nil {
		return storageErr(err)
	}
	record.Sequence = seq

	data, err := json.Marshal(record)
	if err != nil {
		return storageErr(err)
	}

	key := transactionKey(seq)

	// Pipeline the record write with its index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.RPush(ctx, transactionIndexKey(), key)
	pipe.RPush(ctx, userTransactionIndexKey(record.Username), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *Storage) ListTransactions(ctx context.Context, username string, limit int) ([]*model.TransactionRecord, error) {
	indexKey := transactionIndexKey()
	if username != "" {
		indexKey = userTransactionIndexKey(username)
	}

	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	keys, err := s.client.LRange(ctx, indexKey, start, -1).Result()
	if err != nil {
		return nil, storageErr(err)
	}
	if len(keys) == 0 {
		return []*model.TransactionRecord{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storageErr(err)
	}

	// Index lists are append-ordered; return newest first
	records := make([]*model.TransactionRecord, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		val := values[i]
		if val == nil {
			continue
		}
		var record model.TransactionRecord
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			continue
		}
		records = append(records, &record)
	}
	return records, nil
}

// Audit log operations

func (s *Storage) AppendAuditEvent(ctx context.Context, event *model.AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return storageErr(err)
	}
	if err := s.client.RPush(ctx, auditLogKey(), data).Err(); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *Storage) ListAuditEvents(ctx context.Context, limit int) ([]*model.AuditEvent, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	values, err := s.client.LRange(ctx, auditLogKey(), start, -1).Result()
	if err != nil {
		return nil, storageErr(err)
	}

	events := make([]*model.AuditEvent, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		var event model.AuditEvent
		if err := json.Unmarshal([]byte(values[i]), &event); err != nil {
			continue
		}
		events = append(events, &event)
	}
	return events, nil
}

// Snapshot slot operations

func (s *Storage) SaveSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return storageErr(err)
	}
	if err := s.client.Set(ctx, snapshotKey(), data, 0).Err(); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *Storage) GetSnapshot(ctx context.Context) (*model.Snapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSnapshotNotFound
		}
		return nil, storageErr(err)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, storageErr(err)
	}
	return &snapshot, nil
}
