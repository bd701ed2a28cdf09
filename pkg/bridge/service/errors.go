package service

import (
	"errors"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

// toServiceError classifies a domain error and tags it with its reason code.
func toServiceError(err error) error {
	if err == nil {
		return nil
	}
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		return err
	}

	reason := bridge.ReasonFor(err)
	var out error
	switch reason {
	case bridge.ReasonUnknownBridge, bridge.ReasonUnknownLedger:
		out = apperrors.ResourceNotFoundError(err, err.Error())
	case bridge.ReasonNotRecipient, bridge.ReasonInvalidSignature,
		bridge.ReasonNotAdmin, bridge.ReasonMissingCapability:
		out = apperrors.ForbiddenError(err, err.Error())
	case bridge.ReasonInvalidAmount, bridge.ReasonSameChain:
		out = apperrors.BadRequestError(err, err.Error())
	case bridge.ReasonNonceAlreadyProcessed, bridge.ReasonSwapFailed,
		bridge.ReasonRedeemFailed, bridge.ReasonInsufficientBalance:
		out = apperrors.ConflictError(err, err.Error())
	default:
		return apperrors.GeneralError(err)
	}
	return apperrors.WithReason(out, reason)
}
