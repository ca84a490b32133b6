package domain

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/internal/model"
	"github.com/wechest/backend/internal/repository"
	"github.com/wechest/backend/pkg/ethutil"
	"github.com/wechest/backend/pkg/testutil"
	"github.com/wechest/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func insertTestPlayer(t *testing.T, ctx context.Context, address string, tickets uint) {
	t.Helper()

	err := repository.NewPlayerRepository().Create(ctx, &entity.Player{
		Base:        entity.Base{ID: uuid.NewString()},
		Address:     address,
		Tickets:     tickets,
		TotalClaims: tickets,
	})
	require.NoError(t, err)
}

func signLotteryClaim(
	ctx context.Context, signer *testutil.Signer, prizeID string, nonce *entity.AuthNonce,
) string {
	cfg := xcontext.Configs(ctx)
	message := ethutil.ChallengeMessage(
		cfg.Chain.Domain, cfg.Chain.ChainID,
		signer.Address(), ethutil.LotteryClaimPurpose(prizeID), nonce.Nonce, nonce.IssuedAt)
	return signer.Sign(message)
}

func grandPrize(t *testing.T, ctx context.Context) *entity.LotteryPrize {
	t.Helper()

	prizes, err := repository.NewLotteryRepository().GetPrizes(ctx)
	require.NoError(t, err)
	require.Len(t, prizes, 3)

	// Seeded catalog is ordered by cost, the grand prize costs three.
	require.Equal(t, uint(3), prizes[2].Cost)
	return &prizes[2]
}

func Test_lotteryDomain_Claim_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	lotteryDomain := NewLotteryDomain(
		repository.NewAuthNonceRepository(),
		repository.NewLotteryRepository(),
		repository.NewPlayerRepository(),
	)

	insertTestPlayer(t, ctx, signer.Address(), 3)
	prize := grandPrize(t, ctx)

	// Redeeming the grand prize drains the balance to zero.
	nonce := issueTestNonce(t, ctx, signer.Address())
	resp, err := lotteryDomain.Claim(ctx, &model.ClaimLotteryRequest{
		Address:   signer.Address(),
		PrizeID:   prize.ID,
		Nonce:     nonce.Nonce,
		Signature: signLotteryClaim(ctx, signer, prize.ID, nonce),
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, uint(0), resp.RemainingTickets)
	require.Equal(t, prize.Name, resp.Claim.PrizeName)
	require.Equal(t, uint(3), resp.Claim.TicketsSpent)

	// With zero tickets the lottery is locked again.
	nonce = issueTestNonce(t, ctx, signer.Address())
	_, err = lotteryDomain.Claim(ctx, &model.ClaimLotteryRequest{
		Address:   signer.Address(),
		PrizeID:   prize.ID,
		Nonce:     nonce.Nonce,
		Signature: signLotteryClaim(ctx, signer, prize.ID, nonce),
	})
	require.Equal(t, "Lottery unlocks at 3 tickets", err.Error())
}

func Test_lotteryDomain_Claim_Locked(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	lotteryDomain := NewLotteryDomain(
		repository.NewAuthNonceRepository(),
		repository.NewLotteryRepository(),
		repository.NewPlayerRepository(),
	)

	insertTestPlayer(t, ctx, signer.Address(), 2)
	prize := grandPrize(t, ctx)

	nonce := issueTestNonce(t, ctx, signer.Address())
	_, err := lotteryDomain.Claim(ctx, &model.ClaimLotteryRequest{
		Address:   signer.Address(),
		PrizeID:   prize.ID,
		Nonce:     nonce.Nonce,
		Signature: signLotteryClaim(ctx, signer, prize.ID, nonce),
	})
	require.Equal(t, "Lottery unlocks at 3 tickets", err.Error())
}

func Test_lotteryDomain_Claim_UnknownPlayerAndPrize(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	lotteryDomain := NewLotteryDomain(
		repository.NewAuthNonceRepository(),
		repository.NewLotteryRepository(),
		repository.NewPlayerRepository(),
	)

	prize := grandPrize(t, ctx)

	// Never claimed a chest, no player row.
	nonce := issueTestNonce(t, ctx, signer.Address())
	_, err := lotteryDomain.Claim(ctx, &model.ClaimLotteryRequest{
		Address:   signer.Address(),
		PrizeID:   prize.ID,
		Nonce:     nonce.Nonce,
		Signature: signLotteryClaim(ctx, signer, prize.ID, nonce),
	})
	require.Equal(t, "Player not found", err.Error())

	// Unknown prize id.
	insertTestPlayer(t, ctx, signer.Address(), 3)
	nonce = issueTestNonce(t, ctx, signer.Address())
	_, err = lotteryDomain.Claim(ctx, &model.ClaimLotteryRequest{
		Address:   signer.Address(),
		PrizeID:   "no-such-prize",
		Nonce:     nonce.Nonce,
		Signature: signLotteryClaim(ctx, signer, "no-such-prize", nonce),
	})
	require.Equal(t, "Prize not found", err.Error())
}

func Test_lotteryDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	lotteryDomain := NewLotteryDomain(
		repository.NewAuthNonceRepository(),
		repository.NewLotteryRepository(),
		repository.NewPlayerRepository(),
	)

	// Catalog shape without an address.
	resp, err := lotteryDomain.Get(ctx, &model.GetLotteryRequest{})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, resp.Prizes, 3)
	require.NotNil(t, resp.Stats)
	require.Equal(t, int64(0), resp.Stats.TotalClaims)

	// Player shape, below the unlock threshold.
	insertTestPlayer(t, ctx, signer.Address(), 2)
	resp, err = lotteryDomain.Get(ctx, &model.GetLotteryRequest{Address: signer.Address()})
	require.NoError(t, err)
	require.NotNil(t, resp.CanPlayLottery)
	require.False(t, *resp.CanPlayLottery)
	require.Equal(t, uint(2), *resp.Tickets)
	require.Empty(t, resp.LotteryHistory)
}
