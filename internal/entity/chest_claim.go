package entity

// ChestClaim records one daily reward. The (address, ymd) unique index is the
// idempotence barrier: a concurrent duplicate insert fails instead of
// awarding twice.
type ChestClaim struct {
	Base

	Address string `gorm:"index:idx_chest_claims_address_ymd,unique"`
	Ymd     string `gorm:"index:idx_chest_claims_address_ymd,unique"`

	Signature      string
	TicketsAwarded uint
}
