package domain

import (
	"context"
	"time"

	"github.com/wechest/backend/pkg/errorx"
	"github.com/wechest/backend/pkg/ethutil"
	"github.com/wechest/backend/pkg/xcontext"
)

// verifyChallengeSignature rebuilds the canonical challenge text for the
// given purpose and checks that signature recovers to address. The client
// never supplies the message, only the signature over it.
func verifyChallengeSignature(
	ctx context.Context, address, purpose, nonce, signature string, issuedAt time.Time,
) error {
	cfg := xcontext.Configs(ctx)
	message := ethutil.ChallengeMessage(
		cfg.Chain.Domain, cfg.Chain.ChainID, address, purpose, nonce, issuedAt)

	recovered, err := ethutil.RecoverPersonalSignAddress(message, signature)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot recover signer of %s: %v", address, err)
		return errorx.New(errorx.BadRequest, "Signature verification failed")
	}

	if !ethutil.SameAddress(recovered, address) {
		return errorx.New(errorx.BadRequest, "Signature verification failed")
	}

	return nil
}
