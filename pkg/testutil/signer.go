package testutil

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer is a throwaway wallet producing real personal_sign signatures, so
// verification paths run against genuine secp256k1 material.
type Signer struct {
	key *ecdsa.PrivateKey
}

func NewSigner() *Signer {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}

	return &Signer{key: key}
}

// Address returns the wallet address in canonical lowercase form.
func (s *Signer) Address() string {
	return strings.ToLower(crypto.PubkeyToAddress(s.key.PublicKey).Hex())
}

// Sign produces a personal_sign signature over message, with the recovery id
// encoded as 27/28 the way browser wallets do.
func (s *Signer) Sign(message string) string {
	hash := accounts.TextHash([]byte(message))
	sig, err := crypto.Sign(hash, s.key)
	if err != nil {
		panic(err)
	}

	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig)
}
