package redis

import "fmt"

// Key prefix for all platform data
const keyPrefix = "gami"

// accountKey returns the Redis key for an Account
func accountKey(username string) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, username)
}

// transactionSeqKey returns the Redis key of the ledger sequence counter
func transactionSeqKey() string {
	return fmt.Sprintf("%s:txn:seq", keyPrefix)
}

// transactionKey returns the Redis key for one TransactionRecord
func transactionKey(sequence int64) string {
	return fmt.Sprintf("%s:txn:%d", keyPrefix, sequence)
}

// transactionIndexKey returns the Redis key of the global ledger index LIST
func transactionIndexKey() string {
	return fmt.Sprintf("%s:idx:txns", keyPrefix)
}

// userTransactionIndexKey returns the Redis key of a user's ledger index LIST
func userTransactionIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:txns:%s", keyPrefix, username)
}

// auditLogKey returns the Redis key of the append-only audit LIST
func auditLogKey() string {
	return fmt.Sprintf("%s:audit_log", keyPrefix)
}

// snapshotKey returns the Redis key of the last-known-good snapshot slot
func snapshotKey() string {
	return fmt.Sprintf("%s:snapshot", keyPrefix)
}
