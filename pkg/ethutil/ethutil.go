package ethutil

import (
	"bytes"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrMalformedSignature = errors.New("malformed signature")

// RecoverPersonalSignAddress recovers the signer of a personal_sign message.
// The message is hashed with the "Ethereum Signed Message" prefix before
// recovery.
func RecoverPersonalSignAddress(message string, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, ErrMalformedSignature
	}

	if len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrMalformedSignature
	}

	// Wallets return the yellow paper V as 27/28, go-ethereum expects 0/1.
	if sig[crypto.RecoveryIDOffset] == 27 || sig[crypto.RecoveryIDOffset] == 28 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	hash := accounts.TextHash([]byte(message))
	pubkey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, ErrMalformedSignature
	}

	return crypto.PubkeyToAddress(*pubkey), nil
}

// SameAddress compares two hex addresses case-insensitively.
func SameAddress(a common.Address, hex string) bool {
	return bytes.Equal(a.Bytes(), common.HexToAddress(hex).Bytes())
}

// NormalizeAddress is the canonical storage form of an address: 0x-prefixed
// lowercase hex. Applied before every database read or write.
func NormalizeAddress(hex string) string {
	return strings.ToLower(common.HexToAddress(hex).Hex())
}

// IsHexAddress reports whether the string parses as a 20-byte hex address.
func IsHexAddress(hex string) bool {
	return common.IsHexAddress(hex)
}
