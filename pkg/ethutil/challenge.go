package ethutil

import (
	"fmt"
	"time"
)

// The challenge text follows the EIP-4361 layout so wallets render it as a
// structured sign-in request. Every field is fixed server-side; the client
// only ever signs what the server would rebuild.
const challengeTemplate = `%s wants you to sign in with your Ethereum account:
%s

%s

URI: https://%s
Version: 1
Chain ID: %d
Nonce: %s
Issued At: %s`

func ChallengeMessage(domain string, chainID int64, address, purpose, nonce string, issuedAt time.Time) string {
	return fmt.Sprintf(challengeTemplate,
		domain,
		NormalizeAddress(address),
		purpose,
		domain,
		chainID,
		nonce,
		issuedAt.UTC().Format(time.RFC3339),
	)
}

func ChestClaimPurpose(ymd string) string {
	return fmt.Sprintf("Claim daily chest for %s", ymd)
}

func LotteryClaimPurpose(prizeID string) string {
	return fmt.Sprintf("Claim lottery prize %s", prizeID)
}
