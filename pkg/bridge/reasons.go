package bridge

import "errors"

// Reason codes are the stable, transport independent names of the sentinel errors.
const (
	ReasonNotRecipient          = "not_recipient"
	ReasonNonceAlreadyProcessed = "nonce_already_processed"
	ReasonInvalidSignature      = "invalid_signature"
	ReasonInvalidAmount         = "invalid_amount"
	ReasonSwapFailed            = "swap_failed"
	ReasonRedeemFailed          = "redeem_failed"
	ReasonUnknownBridge         = "unknown_bridge"
	ReasonUnknownLedger         = "unknown_ledger"
	ReasonNotAdmin              = "not_admin"
	ReasonMissingCapability     = "missing_capability"
	ReasonInsufficientBalance   = "insufficient_balance"
	ReasonSameChain             = "same_chain"
)

var reasons = []struct {
	reason string
	err    error
}{
	{ReasonNotRecipient, ErrNotRecipient},
	{ReasonNonceAlreadyProcessed, ErrNonceAlreadyProcessed},
	{ReasonInvalidSignature, ErrInvalidSignature},
	{ReasonInvalidAmount, ErrZeroAmount},
	{ReasonInvalidAmount, ErrAmountOverflow},
	// operation failures wrap ledger failures and are matched first
	{ReasonSwapFailed, ErrSwapFailed},
	{ReasonRedeemFailed, ErrRedeemFailed},
	{ReasonUnknownBridge, ErrUnknownBridge},
	{ReasonUnknownLedger, ErrUnknownLedger},
	{ReasonNotAdmin, ErrNotAdmin},
	{ReasonMissingCapability, ErrMissingCapability},
	{ReasonInsufficientBalance, ErrInsufficientBalance},
	{ReasonSameChain, ErrSameChain},
}

// ReasonFor returns the reason code of the first sentinel err matches, or "" if none does.
func ReasonFor(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ""
}

// ErrorForReason returns the sentinel named by reason, or nil for an unknown code.
func ErrorForReason(reason string) error {
	for _, r := range reasons {
		if r.reason == reason {
			return r.err
		}
	}
	return nil
}
