package entity

// Player is the durable balance record. Tickets only change through chest
// claims and lottery redemptions; there is no other write path.
type Player struct {
	Base

	Address string `gorm:"unique"`

	Tickets     uint
	TotalClaims uint
	TotalPoints uint
	BestScore   uint

	FirstClaimDate string
	LastClaimDate  string
}
