package entity

import "time"

// AuthNonce is a single-use challenge token bound to one claiming address.
// Rows are hard-deleted on consumption or expiry; the composite unique index
// is what makes consumption a winner-takes-all delete.
type AuthNonce struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time

	Address string `gorm:"index:idx_auth_nonces_address_nonce,unique"`
	Nonce   string `gorm:"index:idx_auth_nonces_address_nonce,unique"`

	IssuedAt  time.Time
	ExpiresAt time.Time `gorm:"index"`
}
