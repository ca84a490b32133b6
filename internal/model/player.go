package model

type Player struct {
	Address        string `json:"address"`
	Tickets        uint   `json:"tickets"`
	TotalClaims    uint   `json:"totalClaims"`
	TotalPoints    uint   `json:"totalPoints"`
	BestScore      uint   `json:"bestScore"`
	FirstClaimDate string `json:"firstClaimDate"`
	LastClaimDate  string `json:"lastClaimDate"`
}

type GetPlayerRequest struct {
	Address string `json:"address"`
}

type GetPlayerResponse struct {
	Success bool   `json:"success"`
	Player  Player `json:"player"`
}

type UpdateScoreRequest struct {
	Address string `json:"address"`
	Score   uint   `json:"score"`
}

type UpdateScoreResponse struct {
	Success bool   `json:"success"`
	Player  Player `json:"player"`
}

type GetGameStatusRequest struct {
	Address string `json:"address"`
	Ymd     string `json:"ymd"`
}

type GetGameStatusResponse struct {
	Success        bool        `json:"success"`
	HasPlayedToday bool        `json:"hasPlayedToday"`
	Claim          *ChestClaim `json:"claim"`
}

type GetDateRequest struct{}

type GetDateResponse struct {
	Success   bool   `json:"success"`
	Ymd       string `json:"ymd"`
	Timestamp int64  `json:"timestamp"`
	Timezone  string `json:"timezone"`
}
