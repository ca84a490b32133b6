package domain

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/internal/model"
	"github.com/wechest/backend/internal/repository"
	"github.com/wechest/backend/pkg/dateutil"
	"github.com/wechest/backend/pkg/ethutil"
	"github.com/wechest/backend/pkg/testutil"
	"github.com/wechest/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func issueTestNonce(t *testing.T, ctx context.Context, address string) *entity.AuthNonce {
	t.Helper()

	nonce := &entity.AuthNonce{
		ID:        uuid.NewString(),
		Address:   address,
		Nonce:     uuid.NewString(),
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}

	err := repository.NewAuthNonceRepository().Create(ctx, nonce)
	require.NoError(t, err)
	return nonce
}

func signChestClaim(
	ctx context.Context, signer *testutil.Signer, ymd string, nonce *entity.AuthNonce,
) string {
	cfg := xcontext.Configs(ctx)
	message := ethutil.ChallengeMessage(
		cfg.Chain.Domain, cfg.Chain.ChainID,
		signer.Address(), ethutil.ChestClaimPurpose(ymd), nonce.Nonce, nonce.IssuedAt)
	return signer.Sign(message)
}

func Test_chestDomain_Claim_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	chestDomain := NewChestDomain(
		repository.NewAuthNonceRepository(),
		repository.NewChestClaimRepository(),
		repository.NewPlayerRepository(),
	)

	today := dateutil.CurrentYmd()

	// First claim of the day succeeds and creates the player.
	nonce := issueTestNonce(t, ctx, signer.Address())
	resp, err := chestDomain.Claim(ctx, &model.ClaimChestRequest{
		Address:   signer.Address(),
		Ymd:       today,
		Nonce:     nonce.Nonce,
		Signature: signChestClaim(ctx, signer, today, nonce),
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, ClaimStatusClaimed, resp.Status)
	require.Equal(t, uint(1), resp.Tickets)
	require.NotNil(t, resp.Claim)
	require.Equal(t, today, resp.Claim.Ymd)

	// A second claim with a fresh nonce is a benign already_claimed, and the
	// balance does not move.
	nonce = issueTestNonce(t, ctx, signer.Address())
	resp, err = chestDomain.Claim(ctx, &model.ClaimChestRequest{
		Address:   signer.Address(),
		Ymd:       today,
		Nonce:     nonce.Nonce,
		Signature: signChestClaim(ctx, signer, today, nonce),
	})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, ClaimStatusAlreadyClaimed, resp.Status)
	require.Equal(t, uint(1), resp.Tickets)
}

func Test_chestDomain_Claim_NonceSingleUse(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	chestDomain := NewChestDomain(
		repository.NewAuthNonceRepository(),
		repository.NewChestClaimRepository(),
		repository.NewPlayerRepository(),
	)

	today := dateutil.CurrentYmd()
	nonce := issueTestNonce(t, ctx, signer.Address())

	// A bad signature still consumes the nonce.
	otherSigner := testutil.NewSigner()
	_, err := chestDomain.Claim(ctx, &model.ClaimChestRequest{
		Address:   signer.Address(),
		Ymd:       today,
		Nonce:     nonce.Nonce,
		Signature: signChestClaim(ctx, otherSigner, today, nonce),
	})
	require.Equal(t, "Signature verification failed", err.Error())

	// Retrying with the burned nonce fails even with a valid signature.
	_, err = chestDomain.Claim(ctx, &model.ClaimChestRequest{
		Address:   signer.Address(),
		Ymd:       today,
		Nonce:     nonce.Nonce,
		Signature: signChestClaim(ctx, signer, today, nonce),
	})
	require.Equal(t, "Invalid or expired nonce", err.Error())
}

func Test_chestDomain_Claim_NonceBoundToAddress(t *testing.T) {
	ctx := testutil.MockContext()
	signerA := testutil.NewSigner()
	signerB := testutil.NewSigner()

	chestDomain := NewChestDomain(
		repository.NewAuthNonceRepository(),
		repository.NewChestClaimRepository(),
		repository.NewPlayerRepository(),
	)

	today := dateutil.CurrentYmd()
	nonceA := issueTestNonce(t, ctx, signerA.Address())

	// B cannot spend A's nonce.
	_, err := chestDomain.Claim(ctx, &model.ClaimChestRequest{
		Address:   signerB.Address(),
		Ymd:       today,
		Nonce:     nonceA.Nonce,
		Signature: signChestClaim(ctx, signerB, today, nonceA),
	})
	require.Equal(t, "Invalid or expired nonce", err.Error())
}

func Test_chestDomain_Claim_ExpiredNonce(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	chestDomain := NewChestDomain(
		repository.NewAuthNonceRepository(),
		repository.NewChestClaimRepository(),
		repository.NewPlayerRepository(),
	)

	today := dateutil.CurrentYmd()
	nonce := &entity.AuthNonce{
		ID:        uuid.NewString(),
		Address:   signer.Address(),
		Nonce:     uuid.NewString(),
		IssuedAt:  time.Now().Add(-10 * time.Minute),
		ExpiresAt: time.Now().Add(-5 * time.Minute),
	}
	err := repository.NewAuthNonceRepository().Create(ctx, nonce)
	require.NoError(t, err)

	_, err = chestDomain.Claim(ctx, &model.ClaimChestRequest{
		Address:   signer.Address(),
		Ymd:       today,
		Nonce:     nonce.Nonce,
		Signature: signChestClaim(ctx, signer, today, nonce),
	})
	require.Equal(t, "Invalid or expired nonce", err.Error())
}

func Test_chestDomain_Claim_RejectsOtherDays(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	chestDomain := NewChestDomain(
		repository.NewAuthNonceRepository(),
		repository.NewChestClaimRepository(),
		repository.NewPlayerRepository(),
	)

	yesterday := dateutil.Ymd(time.Now().AddDate(0, 0, -1))
	nonce := issueTestNonce(t, ctx, signer.Address())

	_, err := chestDomain.Claim(ctx, &model.ClaimChestRequest{
		Address:   signer.Address(),
		Ymd:       yesterday,
		Nonce:     nonce.Nonce,
		Signature: signChestClaim(ctx, signer, yesterday, nonce),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Claims are only accepted for")
}

func Test_chestDomain_GetClaim(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	chestDomain := NewChestDomain(
		repository.NewAuthNonceRepository(),
		repository.NewChestClaimRepository(),
		repository.NewPlayerRepository(),
	)

	today := dateutil.CurrentYmd()

	resp, err := chestDomain.GetClaim(ctx, &model.GetChestClaimRequest{
		Address: signer.Address(), Ymd: today,
	})
	require.NoError(t, err)
	require.False(t, resp.Claimed)
	require.Nil(t, resp.Claim)

	nonce := issueTestNonce(t, ctx, signer.Address())
	_, err = chestDomain.Claim(ctx, &model.ClaimChestRequest{
		Address:   signer.Address(),
		Ymd:       today,
		Nonce:     nonce.Nonce,
		Signature: signChestClaim(ctx, signer, today, nonce),
	})
	require.NoError(t, err)

	resp, err = chestDomain.GetClaim(ctx, &model.GetChestClaimRequest{
		Address: signer.Address(), Ymd: today,
	})
	require.NoError(t, err)
	require.True(t, resp.Claimed)
	require.Equal(t, uint(1), resp.Claim.TicketsAwarded)
}
