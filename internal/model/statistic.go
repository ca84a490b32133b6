package model

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Address       string `json:"address"`
	Tickets       uint   `json:"tickets"`
	TotalClaims   uint   `json:"totalClaims"`
	TotalPoints   uint   `json:"totalPoints"`
	LastClaimDate string `json:"lastClaimDate"`
}

type OverviewStats struct {
	TotalPlayers   int64   `json:"totalPlayers"`
	TotalTickets   int64   `json:"totalTickets"`
	TotalClaims    int64   `json:"totalClaims"`
	TotalPoints    int64   `json:"totalPoints"`
	AverageTickets float64 `json:"averageTickets"`
	MaxTickets     int64   `json:"maxTickets"`
	HighestScore   int64   `json:"highestScore"`
}

type DailyActivity struct {
	Date         string `json:"date"`
	Players      int64  `json:"players"`
	TotalPoints  int64  `json:"totalPoints"`
	TotalTickets int64  `json:"totalTickets"`
}

type GetLeaderboardRequest struct {
	Limit int    `json:"limit"`
	Type  string `json:"type"`
}

type GetLeaderboardResponse struct {
	Success     bool               `json:"success"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Stats       OverviewStats      `json:"stats"`
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	Success       bool               `json:"success"`
	Overview      OverviewStats      `json:"overview"`
	ActivePlayers int64              `json:"activePlayers"`
	TopPlayers    []LeaderboardEntry `json:"topPlayers"`
	DailyActivity []DailyActivity    `json:"dailyActivity"`
	Lottery       LotteryStats       `json:"lottery"`
}
