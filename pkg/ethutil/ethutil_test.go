package ethutil

import (
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestRecoverPersonalSignAddress(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	message := "hello wechest"
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)

	// Wallet-style signature with V as 27/28.
	sig[crypto.RecoveryIDOffset] += 27
	recovered, err := RecoverPersonalSignAddress(message, hexutil.Encode(sig))
	require.NoError(t, err)
	require.Equal(t, address, recovered)
	require.True(t, SameAddress(recovered, strings.ToLower(address.Hex())))

	// A different message recovers a different address.
	recovered, err = RecoverPersonalSignAddress("another message", hexutil.Encode(sig))
	require.NoError(t, err)
	require.NotEqual(t, address, recovered)
}

func TestRecoverPersonalSignAddress_Malformed(t *testing.T) {
	_, err := RecoverPersonalSignAddress("msg", "not-hex")
	require.ErrorIs(t, err, ErrMalformedSignature)

	_, err = RecoverPersonalSignAddress("msg", "0x0102")
	require.ErrorIs(t, err, ErrMalformedSignature)
}

func TestNormalizeAddress(t *testing.T) {
	mixed := "0xAbCd000000000000000000000000000000001234"
	require.Equal(t, strings.ToLower(mixed), NormalizeAddress(mixed))
	require.Equal(t, strings.ToLower(mixed), NormalizeAddress(strings.ToUpper(mixed[2:])))
}

func TestChallengeMessage(t *testing.T) {
	issuedAt, err := time.Parse(time.RFC3339, "2024-01-01T10:00:00Z")
	require.NoError(t, err)

	message := ChallengeMessage(
		"wechest.xyz", 10143,
		"0xAbCd000000000000000000000000000000001234",
		ChestClaimPurpose("2024-01-01"),
		"nonce-123", issuedAt)

	require.Contains(t, message, "wechest.xyz wants you to sign in with your Ethereum account:")
	require.Contains(t, message, "0xabcd000000000000000000000000000000001234")
	require.Contains(t, message, "Claim daily chest for 2024-01-01")
	require.Contains(t, message, "Chain ID: 10143")
	require.Contains(t, message, "Nonce: nonce-123")
	require.Contains(t, message, "Issued At: 2024-01-01T10:00:00Z")

	// The lottery purpose yields a different message over the same nonce.
	other := ChallengeMessage(
		"wechest.xyz", 10143,
		"0xAbCd000000000000000000000000000000001234",
		LotteryClaimPurpose("prize-1"),
		"nonce-123", issuedAt)
	require.NotEqual(t, message, other)
	require.Contains(t, other, "Claim lottery prize prize-1")
}
