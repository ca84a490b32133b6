package model

type ChestClaim struct {
	ID             string `json:"id"`
	Address        string `json:"address"`
	Ymd            string `json:"ymd"`
	TicketsAwarded uint   `json:"ticketsAwarded"`
	ClaimedAt      string `json:"claimedAt"`
}

type GetChestClaimRequest struct {
	Address string `json:"address"`
	Ymd     string `json:"ymd"`
}

type GetChestClaimResponse struct {
	Claimed bool        `json:"claimed"`
	Claim   *ChestClaim `json:"claim"`
}

type ClaimChestRequest struct {
	Address   string `json:"address"`
	Ymd       string `json:"ymd"`
	Signature string `json:"signature"`
	Nonce     string `json:"nonce"`
}

// ClaimChestResponse carries status "claimed" on success and
// "already_claimed" when the day's row already exists. The latter is a 200,
// not an error.
type ClaimChestResponse struct {
	Success bool        `json:"success"`
	Status  string      `json:"status"`
	Tickets uint        `json:"tickets"`
	Claim   *ChestClaim `json:"claim,omitempty"`
}
