package domain

import (
	"testing"
	"time"

	"github.com/wechest/backend/internal/model"
	"github.com/wechest/backend/internal/repository"
	"github.com/wechest/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_nonceDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()
	signer := testutil.NewSigner()

	nonceRepo := repository.NewAuthNonceRepository()
	nonceDomain := NewNonceDomain(nonceRepo)

	resp, err := nonceDomain.Get(ctx, &model.GetNonceRequest{Address: signer.Address()})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Nonce)
	require.Equal(t, "wechest.xyz", resp.Domain)
	require.Equal(t, int64(10143), resp.ChainID)

	issuedAt, err := time.Parse(time.RFC3339, resp.IssuedAt)
	require.NoError(t, err)
	expiration, err := time.Parse(time.RFC3339, resp.ExpirationTime)
	require.NoError(t, err)
	require.Equal(t, 5*time.Minute, expiration.Sub(issuedAt))

	// The issued nonce is consumable exactly once.
	_, err = nonceRepo.Consume(ctx, signer.Address(), resp.Nonce, time.Now())
	require.NoError(t, err)
	_, err = nonceRepo.Consume(ctx, signer.Address(), resp.Nonce, time.Now())
	require.Error(t, err)
}

func Test_nonceDomain_Get_InvalidAddress(t *testing.T) {
	ctx := testutil.MockContext()
	nonceDomain := NewNonceDomain(repository.NewAuthNonceRepository())

	_, err := nonceDomain.Get(ctx, &model.GetNonceRequest{Address: "not-an-address"})
	require.Equal(t, "Invalid address", err.Error())
}
