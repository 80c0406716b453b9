package model

import "time"

// StarterWealth is granted to every new account on signup.
const StarterWealth = 10000

// StarterAsset is the single asset included with a new account.
const StarterAsset = "starter_package"

// Account represents a registered player identity. Accounts are never
// hard-deleted; wealth is only ever mutated by the transaction engine.
type Account struct {
	Username         string    `json:"username"`
	CredentialDigest string    `json:"credential_digest"`
	Wealth           float64   `json:"wealth"`
	Assets           []string  `json:"assets"`
	CreatedAt        time.Time `json:"created_at"`
	LastLoginAt      time.Time `json:"last_login_at"`
}
