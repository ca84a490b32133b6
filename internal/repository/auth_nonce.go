package repository

import (
	"context"
	"time"

	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthNonceRepository interface {
	Create(ctx context.Context, nonce *entity.AuthNonce) error

	// Consume deletes the nonce if it exists and has not expired, and returns
	// the deleted record. The delete's affected-row count decides the winner
	// between concurrent consumers; the loser gets gorm.ErrRecordNotFound.
	Consume(ctx context.Context, address, nonce string, now time.Time) (*entity.AuthNonce, error)

	DeleteExpired(ctx context.Context, now time.Time) error
}

type authNonceRepository struct{}

func NewAuthNonceRepository() *authNonceRepository {
	return &authNonceRepository{}
}

func (r *authNonceRepository) Create(ctx context.Context, nonce *entity.AuthNonce) error {
	return xcontext.DB(ctx).Create(nonce).Error
}

func (r *authNonceRepository) Consume(
	ctx context.Context, address, nonce string, now time.Time,
) (*entity.AuthNonce, error) {
	var record entity.AuthNonce
	err := xcontext.DB(ctx).
		Take(&record, "address=? AND nonce=? AND expires_at > ?", address, nonce, now).Error
	if err != nil {
		return nil, err
	}

	tx := xcontext.DB(ctx).
		Where("address=? AND nonce=?", address, nonce).
		Delete(&entity.AuthNonce{})
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Someone else consumed it between the read and the delete.
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &record, nil
}

func (r *authNonceRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	return xcontext.DB(ctx).
		Where("expires_at < ?", now).
		Delete(&entity.AuthNonce{}).Error
}
