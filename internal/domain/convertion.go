package domain

import (
	"time"

	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/internal/model"
)

func convertPlayer(player *entity.Player) model.Player {
	return model.Player{
		Address:        player.Address,
		Tickets:        player.Tickets,
		TotalClaims:    player.TotalClaims,
		TotalPoints:    player.TotalPoints,
		BestScore:      player.BestScore,
		FirstClaimDate: player.FirstClaimDate,
		LastClaimDate:  player.LastClaimDate,
	}
}

func convertChestClaim(claim *entity.ChestClaim) *model.ChestClaim {
	return &model.ChestClaim{
		ID:             claim.ID,
		Address:        claim.Address,
		Ymd:            claim.Ymd,
		TicketsAwarded: claim.TicketsAwarded,
		ClaimedAt:      claim.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func convertLotteryPrize(prize *entity.LotteryPrize) model.LotteryPrize {
	return model.LotteryPrize{
		ID:          prize.ID,
		Name:        prize.Name,
		Description: prize.Description,
		Cost:        prize.Cost,
	}
}

func convertLotteryClaim(claim *entity.LotteryClaim) *model.LotteryClaim {
	return &model.LotteryClaim{
		ID:           claim.ID,
		PrizeID:      claim.PrizeID,
		PrizeName:    claim.PrizeName,
		TicketsSpent: claim.TicketsSpent,
		ClaimedAt:    claim.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func convertLeaderboard(players []entity.Player) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(players))
	for i := range players {
		entries = append(entries, model.LeaderboardEntry{
			Rank:          i + 1,
			Address:       players[i].Address,
			Tickets:       players[i].Tickets,
			TotalClaims:   players[i].TotalClaims,
			TotalPoints:   players[i].TotalPoints,
			LastClaimDate: players[i].LastClaimDate,
		})
	}

	return entries
}
