package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/gamiempire/sovereign/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Account tests

func (s *StorageSuite) TestSaveAndGetAccount() {
	account := &model.Account{
		Username:         "alice",
		CredentialDigest: "digest",
		Wealth:           10000,
		Assets:           []string{"starter_package"},
		CreatedAt:        time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.storage.SaveAccount(s.ctx, account))

	got, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", got.Username)
	s.Equal(float64(10000), got.Wealth)
	s.Equal([]string{"starter_package"}, got.Assets)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestSaveAccountOverwrites() {
	account := &model.Account{Username: "alice", Wealth: 10000}
	s.Require().NoError(s.storage.SaveAccount(s.ctx, account))

	account.Wealth = 12345
	s.Require().NoError(s.storage.SaveAccount(s.ctx, account))

	got, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(float64(12345), got.Wealth)
}

// Transaction ledger tests

func (s *StorageSuite) TestAppendTransactionAssignsSequence() {
	first := &model.TransactionRecord{Type: model.TxnCrowRental, Username: "alice", Net: 13.5}
	second := &model.TransactionRecord{Type: model.TxnTreeRental, Username: "alice", Net: 18.9}

	s.Require().NoError(s.storage.AppendTransaction(s.ctx, first))
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, second))

	s.Equal(int64(1), first.Sequence)
	s.Equal(int64(2), second.Sequence)
}

func (s *StorageSuite) TestListTransactionsNewestFirst() {
	for _, txnType := range []model.TransactionType{model.TxnCrowRental, model.TxnTreeRental, model.TxnShopPurchase} {
		record := &model.TransactionRecord{Type: txnType, Username: "alice"}
		s.Require().NoError(s.storage.AppendTransaction(s.ctx, record))
	}

	records, err := s.storage.ListTransactions(s.ctx, "alice", 10)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(model.TxnShopPurchase, records[0].Type)
	s.Equal(model.TxnCrowRental, records[2].Type)
}

func (s *StorageSuite) TestListTransactionsFiltersByUser() {
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, &model.TransactionRecord{Type: model.TxnCrowRental, Username: "alice"}))
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, &model.TransactionRecord{Type: model.TxnTreeRental, Username: "bobby"}))

	records, err := s.storage.ListTransactions(s.ctx, "bobby", 10)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(model.TxnTreeRental, records[0].Type)
}

func (s *StorageSuite) TestListTransactionsHonorsLimit() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.storage.AppendTransaction(s.ctx, &model.TransactionRecord{Type: model.TxnCrowRental, Username: "alice"}))
	}

	records, err := s.storage.ListTransactions(s.ctx, "alice", 2)
	s.Require().NoError(err)
	s.Len(records, 2)
	s.Equal(int64(5), records[0].Sequence)
}

func (s *StorageSuite) TestListTransactionsEmpty() {
	records, err := s.storage.ListTransactions(s.ctx, "alice", 10)
	s.Require().NoError(err)
	s.Empty(records)
}

// Audit log tests

func (s *StorageSuite) TestAppendAndListAuditEvents() {
	first := &model.AuditEvent{Kind: model.AuditUserCreated, Username: "alice"}
	second := &model.AuditEvent{Kind: model.AuditSessionEnded, Username: "alice"}

	s.Require().NoError(s.storage.AppendAuditEvent(s.ctx, first))
	s.Require().NoError(s.storage.AppendAuditEvent(s.ctx, second))

	events, err := s.storage.ListAuditEvents(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(model.AuditSessionEnded, events[0].Kind) // Newest first
}

func (s *StorageSuite) TestListAuditEventsHonorsLimit() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.storage.AppendAuditEvent(s.ctx, &model.AuditEvent{Kind: model.AuditTransaction}))
	}

	events, err := s.storage.ListAuditEvents(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(events, 3)
}

// Snapshot tests

func (s *StorageSuite) TestSaveAndGetSnapshot() {
	snapshot := &model.Snapshot{
		Settings:       map[string]any{"admin_setting_3": true},
		ActiveSessions: 2,
		SavedAt:        time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, snapshot))

	got, err := s.storage.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, got.ActiveSessions)
	s.Equal(true, got.Settings["admin_setting_3"])
}

func (s *StorageSuite) TestGetSnapshotNotFound() {
	_, err := s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

func (s *StorageSuite) TestSnapshotOverwritesPreviousSlot() {
	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, &model.Snapshot{ActiveSessions: 1}))
	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, &model.Snapshot{ActiveSessions: 7}))

	got, err := s.storage.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(7, got.ActiveSessions)
}
