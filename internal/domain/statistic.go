package domain

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/internal/model"
	"github.com/wechest/backend/internal/repository"
	"github.com/wechest/backend/pkg/errorx"
	"github.com/wechest/backend/pkg/xcontext"
	"github.com/wechest/backend/pkg/xredis"
)

const (
	ticketsLeaderboardKey = "leaderboard:tickets"
	leaderboardCacheTTL   = 10 * time.Minute

	activityWindowDays = 7
)

type StatisticDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetStats(context.Context, *model.GetStatsRequest) (*model.GetStatsResponse, error)
}

type statisticDomain struct {
	playerRepo  repository.PlayerRepository
	lotteryRepo repository.LotteryRepository

	// redisClient is nil when redis is not configured; the leaderboard then
	// always comes straight from the database.
	redisClient xredis.Client
}

func NewStatisticDomain(
	playerRepo repository.PlayerRepository,
	lotteryRepo repository.LotteryRepository,
	redisClient xredis.Client,
) StatisticDomain {
	return &statisticDomain{
		playerRepo:  playerRepo,
		lotteryRepo: lotteryRepo,
		redisClient: redisClient,
	}
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	} else if limit > 100 {
		limit = 100
	}

	orderBy := req.Type
	switch orderBy {
	case "", "tickets":
		orderBy = "tickets"
	case "claims", "recent":
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid leaderboard type")
	}

	var players []entity.Player
	if orderBy == "tickets" && d.redisClient != nil {
		players = d.ticketsBoardFromCache(ctx, limit)
	}

	if players == nil {
		var err error
		players, err = d.playerRepo.GetLeaderboard(ctx, repository.LeaderboardFilter{
			OrderBy: orderBy,
			Limit:   limit,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
			return nil, errorx.Unknown
		}
	}

	stats, err := d.playerRepo.Statistic(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get player statistic: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetLeaderboardResponse{
		Success:     true,
		Leaderboard: convertLeaderboard(players),
		Stats:       convertOverview(stats),
	}, nil
}

// ticketsBoardFromCache serves the tickets board from a redis sorted set with
// a short TTL, rebuilding it from the database on a miss. Any cache trouble
// degrades to a database read, never to an error.
func (d *statisticDomain) ticketsBoardFromCache(ctx context.Context, limit int) []entity.Player {
	size, err := d.redisClient.ZCard(ctx, ticketsLeaderboardKey)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read leaderboard cache: %v", err)
		return nil
	}

	if size == 0 {
		top, err := d.playerRepo.GetLeaderboard(ctx, repository.LeaderboardFilter{
			OrderBy: "tickets",
			Limit:   100,
		})
		if err != nil {
			return nil
		}

		for i := range top {
			err := d.redisClient.ZAdd(ctx, ticketsLeaderboardKey, redis.Z{
				Score:  float64(top[i].Tickets),
				Member: top[i].Address,
			})
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot fill leaderboard cache: %v", err)
				break
			}
		}

		if err := d.redisClient.Expire(ctx, ticketsLeaderboardKey, leaderboardCacheTTL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot expire leaderboard cache: %v", err)
		}

		if len(top) > limit {
			top = top[:limit]
		}

		return top
	}

	zs, err := d.redisClient.ZRevRangeWithScores(ctx, ticketsLeaderboardKey, 0, limit)
	if err != nil || len(zs) == 0 {
		return nil
	}

	addresses := make([]string, 0, len(zs))
	for _, z := range zs {
		if member, ok := z.Member.(string); ok {
			addresses = append(addresses, member)
		}
	}

	players, err := d.playerRepo.GetByAddresses(ctx, addresses)
	if err != nil {
		return nil
	}

	byAddress := make(map[string]entity.Player, len(players))
	for i := range players {
		byAddress[players[i].Address] = players[i]
	}

	// Preserve the cache ranking, skip members that vanished from the db.
	ordered := make([]entity.Player, 0, len(addresses))
	for _, address := range addresses {
		if player, ok := byAddress[address]; ok {
			ordered = append(ordered, player)
		}
	}

	if len(ordered) == 0 {
		return nil
	}

	return ordered
}

func (d *statisticDomain) GetStats(
	ctx context.Context, req *model.GetStatsRequest,
) (*model.GetStatsResponse, error) {
	overview, err := d.playerRepo.Statistic(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get player statistic: %v", err)
		return nil, errorx.Unknown
	}

	since := time.Now().AddDate(0, 0, -activityWindowDays)
	active, err := d.playerRepo.CountActiveSince(ctx, since)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count active players: %v", err)
		return nil, errorx.Unknown
	}

	topPlayers, err := d.playerRepo.GetTopByPoints(ctx, 10)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get top players: %v", err)
		return nil, errorx.Unknown
	}

	daily, err := d.playerRepo.DailyActivitySince(ctx, since)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get daily activity: %v", err)
		return nil, errorx.Unknown
	}

	lottery, err := d.lotteryRepo.Statistic(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get lottery statistic: %v", err)
		return nil, errorx.Unknown
	}

	activity := make([]model.DailyActivity, 0, len(daily))
	for _, day := range daily {
		activity = append(activity, model.DailyActivity{
			Date:         day.Date,
			Players:      day.Players,
			TotalPoints:  day.TotalPoints,
			TotalTickets: day.TotalTickets,
		})
	}

	return &model.GetStatsResponse{
		Success:       true,
		Overview:      convertOverview(overview),
		ActivePlayers: active,
		TopPlayers:    convertLeaderboard(topPlayers),
		DailyActivity: activity,
		Lottery: model.LotteryStats{
			TotalClaims:       lottery.TotalClaims,
			TotalTicketsSpent: lottery.TotalTicketsSpent,
			UniquePlayers:     lottery.UniquePlayers,
		},
	}, nil
}

func convertOverview(stats *repository.PlayerStatistic) model.OverviewStats {
	return model.OverviewStats{
		TotalPlayers:   stats.TotalPlayers,
		TotalTickets:   stats.TotalTickets,
		TotalClaims:    stats.TotalClaims,
		TotalPoints:    stats.TotalPoints,
		AverageTickets: stats.AverageTickets,
		MaxTickets:     stats.MaxTickets,
		HighestScore:   stats.HighestScore,
	}
}
