package domain

import (
	"testing"

	"github.com/wechest/backend/internal/model"
	"github.com/wechest/backend/internal/repository"
	"github.com/wechest/backend/pkg/dateutil"
	"github.com/wechest/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_playerDomain_UpdateScore(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	playerDomain := NewPlayerDomain(
		repository.NewPlayerRepository(),
		repository.NewChestClaimRepository(),
	)

	insertTestPlayer(t, ctx, signer.Address(), 1)

	resp, err := playerDomain.UpdateScore(ctx, &model.UpdateScoreRequest{
		Address: signer.Address(), Score: 100,
	})
	require.NoError(t, err)
	require.Equal(t, uint(100), resp.Player.TotalPoints)
	require.Equal(t, uint(100), resp.Player.BestScore)

	// Points accumulate, the best score only moves up.
	resp, err = playerDomain.UpdateScore(ctx, &model.UpdateScoreRequest{
		Address: signer.Address(), Score: 40,
	})
	require.NoError(t, err)
	require.Equal(t, uint(140), resp.Player.TotalPoints)
	require.Equal(t, uint(100), resp.Player.BestScore)

	resp, err = playerDomain.UpdateScore(ctx, &model.UpdateScoreRequest{
		Address: signer.Address(), Score: 250,
	})
	require.NoError(t, err)
	require.Equal(t, uint(390), resp.Player.TotalPoints)
	require.Equal(t, uint(250), resp.Player.BestScore)
}

func Test_playerDomain_UpdateScore_Errors(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	playerDomain := NewPlayerDomain(
		repository.NewPlayerRepository(),
		repository.NewChestClaimRepository(),
	)

	_, err := playerDomain.UpdateScore(ctx, &model.UpdateScoreRequest{
		Address: signer.Address(), Score: 10,
	})
	require.Equal(t, "Player not found", err.Error())

	insertTestPlayer(t, ctx, signer.Address(), 1)
	_, err = playerDomain.UpdateScore(ctx, &model.UpdateScoreRequest{
		Address: signer.Address(), Score: 0,
	})
	require.Equal(t, "Score must be positive", err.Error())
}

func Test_playerDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	playerDomain := NewPlayerDomain(
		repository.NewPlayerRepository(),
		repository.NewChestClaimRepository(),
	)

	_, err := playerDomain.Get(ctx, &model.GetPlayerRequest{Address: signer.Address()})
	require.Equal(t, "Player not found", err.Error())

	insertTestPlayer(t, ctx, signer.Address(), 4)
	resp, err := playerDomain.Get(ctx, &model.GetPlayerRequest{Address: signer.Address()})
	require.NoError(t, err)
	require.Equal(t, signer.Address(), resp.Player.Address)
	require.Equal(t, uint(4), resp.Player.Tickets)
}

func Test_playerDomain_GetDate(t *testing.T) {
	ctx := testutil.MockContext()

	playerDomain := NewPlayerDomain(
		repository.NewPlayerRepository(),
		repository.NewChestClaimRepository(),
	)

	resp, err := playerDomain.GetDate(ctx, &model.GetDateRequest{})
	require.NoError(t, err)
	require.Equal(t, dateutil.CurrentYmd(), resp.Ymd)
	require.Equal(t, "UTC", resp.Timezone)
	require.NotZero(t, resp.Timestamp)
}
