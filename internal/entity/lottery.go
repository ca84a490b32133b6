package entity

type LotteryPrize struct {
	Base

	Name        string `gorm:"unique"`
	Description string
	Cost        uint
	Available   bool
}

// LotteryClaim is the append-only redemption log. No uniqueness constraint: a
// player may redeem as often as the balance allows.
type LotteryClaim struct {
	Base

	Address string `gorm:"index"`

	PrizeID string
	Prize   LotteryPrize `gorm:"foreignKey:PrizeID"`

	PrizeName    string
	TicketsSpent uint
	Signature    string
}
