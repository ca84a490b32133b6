package repository

import (
	"context"
	"errors"
	"time"

	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type LeaderboardFilter struct {
	OrderBy string // tickets | claims | recent
	Limit   int
}

type PlayerStatistic struct {
	TotalPlayers   int64
	TotalTickets   int64
	TotalClaims    int64
	TotalPoints    int64
	AverageTickets float64
	MaxTickets     int64
	HighestScore   int64
}

type DailyActivity struct {
	Date         string
	Players      int64
	TotalPoints  int64
	TotalTickets int64
}

type PlayerRepository interface {
	Create(ctx context.Context, player *entity.Player) error
	GetByAddress(ctx context.Context, address string) (*entity.Player, error)

	// ApplyChestClaim increments tickets and claim counters for an existing
	// player. Returns gorm.ErrRecordNotFound if the player does not exist yet.
	ApplyChestClaim(ctx context.Context, address, ymd string) error

	// SpendTickets debits the balance only if it covers the amount; the
	// condition is evaluated atomically with the write. Returns
	// gorm.ErrRecordNotFound when the balance does not cover the amount.
	SpendTickets(ctx context.Context, address string, amount uint) error

	// AddScore accumulates run points and keeps the best single-run score.
	AddScore(ctx context.Context, address string, score uint) error

	GetLeaderboard(ctx context.Context, filter LeaderboardFilter) ([]entity.Player, error)
	GetByAddresses(ctx context.Context, addresses []string) ([]entity.Player, error)
	GetTopByPoints(ctx context.Context, limit int) ([]entity.Player, error)
	Statistic(ctx context.Context) (*PlayerStatistic, error)
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
	DailyActivitySince(ctx context.Context, since time.Time) ([]DailyActivity, error)
}

type playerRepository struct{}

func NewPlayerRepository() *playerRepository {
	return &playerRepository{}
}

func (r *playerRepository) Create(ctx context.Context, player *entity.Player) error {
	return xcontext.DB(ctx).Create(player).Error
}

func (r *playerRepository) GetByAddress(ctx context.Context, address string) (*entity.Player, error) {
	var result entity.Player
	if err := xcontext.DB(ctx).Take(&result, "address=?", address).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *playerRepository) ApplyChestClaim(ctx context.Context, address, ymd string) error {
	tx := xcontext.DB(ctx).Model(&entity.Player{}).
		Where("address=?", address).
		Updates(map[string]any{
			"tickets":         gorm.Expr("tickets+?", 1),
			"total_claims":    gorm.Expr("total_claims+?", 1),
			"last_claim_date": ymd,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *playerRepository) SpendTickets(ctx context.Context, address string, amount uint) error {
	tx := xcontext.DB(ctx).Model(&entity.Player{}).
		Where("address=? AND tickets >= ?", address, amount).
		Update("tickets", gorm.Expr("tickets-?", amount))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of rows effected is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *playerRepository) AddScore(ctx context.Context, address string, score uint) error {
	tx := xcontext.DB(ctx).Model(&entity.Player{}).
		Where("address=?", address).
		Updates(map[string]any{
			"total_points": gorm.Expr("total_points+?", score),
			"best_score":   gorm.Expr("CASE WHEN best_score >= ? THEN best_score ELSE ? END", score, score),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *playerRepository) GetLeaderboard(
	ctx context.Context, filter LeaderboardFilter,
) ([]entity.Player, error) {
	// Whitelisted order clauses; the filter value never reaches SQL directly.
	var order string
	switch filter.OrderBy {
	case "claims":
		order = "total_claims DESC, tickets DESC"
	case "recent":
		order = "last_claim_date DESC, tickets DESC"
	default:
		order = "tickets DESC, total_claims DESC"
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var result []entity.Player
	err := xcontext.DB(ctx).Model(&entity.Player{}).
		Order(order).Limit(limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *playerRepository) GetByAddresses(
	ctx context.Context, addresses []string,
) ([]entity.Player, error) {
	if len(addresses) == 0 {
		return nil, nil
	}

	var result []entity.Player
	err := xcontext.DB(ctx).Find(&result, "address IN (?)", addresses).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *playerRepository) GetTopByPoints(ctx context.Context, limit int) ([]entity.Player, error) {
	var result []entity.Player
	err := xcontext.DB(ctx).Model(&entity.Player{}).
		Order("total_points DESC").Limit(limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *playerRepository) Statistic(ctx context.Context) (*PlayerStatistic, error) {
	var result PlayerStatistic
	err := xcontext.DB(ctx).Model(&entity.Player{}).
		Select(`COUNT(*) as total_players,
			COALESCE(SUM(tickets), 0) as total_tickets,
			COALESCE(SUM(total_claims), 0) as total_claims,
			COALESCE(SUM(total_points), 0) as total_points,
			COALESCE(AVG(tickets), 0) as average_tickets,
			COALESCE(MAX(tickets), 0) as max_tickets,
			COALESCE(MAX(best_score), 0) as highest_score`).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *playerRepository) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Player{}).
		Where("updated_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *playerRepository) DailyActivitySince(
	ctx context.Context, since time.Time,
) ([]DailyActivity, error) {
	var result []DailyActivity
	err := xcontext.DB(ctx).Model(&entity.Player{}).
		Select(`DATE(updated_at) as date,
			COUNT(*) as players,
			COALESCE(SUM(total_points), 0) as total_points,
			COALESCE(SUM(tickets), 0) as total_tickets`).
		Where("updated_at >= ?", since).
		Group("DATE(updated_at)").
		Order("date DESC").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
