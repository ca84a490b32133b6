package model

type LotteryPrize struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        uint   `json:"cost"`
}

type LotteryClaim struct {
	ID           string `json:"id"`
	PrizeID      string `json:"prizeId"`
	PrizeName    string `json:"prizeName"`
	TicketsSpent uint   `json:"ticketsSpent"`
	ClaimedAt    string `json:"claimedAt"`
}

type LotteryStats struct {
	TotalClaims       int64 `json:"totalClaims"`
	TotalTicketsSpent int64 `json:"totalTicketsSpent"`
	UniquePlayers     int64 `json:"uniquePlayers"`
}

type GetLotteryRequest struct {
	Address string `json:"address"`
}

// GetLotteryResponse has two shapes. With an address it reports that player's
// eligibility and history; without one it lists the prize catalog and global
// stats.
type GetLotteryResponse struct {
	Success bool `json:"success"`

	CanPlayLottery *bool          `json:"canPlayLottery,omitempty"`
	Tickets        *uint          `json:"tickets,omitempty"`
	TotalClaims    *uint          `json:"totalClaims,omitempty"`
	LotteryHistory []LotteryClaim `json:"lotteryHistory,omitempty"`

	Prizes []LotteryPrize `json:"prizes,omitempty"`
	Stats  *LotteryStats  `json:"stats,omitempty"`
}

type ClaimLotteryRequest struct {
	Address   string `json:"address"`
	PrizeID   string `json:"prizeId"`
	Signature string `json:"signature"`
	Nonce     string `json:"nonce"`
}

type ClaimLotteryResponse struct {
	Success          bool          `json:"success"`
	Message          string        `json:"message"`
	Claim            *LotteryClaim `json:"claim"`
	RemainingTickets uint          `json:"remainingTickets"`
}
