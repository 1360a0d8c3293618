package verifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/explorer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=verifier.go -destination=mock_verifier.go -package=verifier

// ErrVerification marks failures to obtain a usable answer from the
// explorer. The caller may retry with the same input.
var ErrVerification = errors.New("verification error")

const (
	ReasonFailedOnChain    = "transaction failed on chain"
	ReasonWrongToken       = "no transfer on the settlement token contract"
	ReasonWrongRecipient   = "transfer recipient does not match the payment wallet"
	reasonInsufficientTmpl = "insufficient amount: received %s, expected %s"
)

type Verdict struct {
	Verified bool
	Amount   decimal.Decimal
	Reason   string
}

func verified(amount decimal.Decimal) Verdict {
	return Verdict{Verified: true, Amount: amount}
}

func rejected(reason string) Verdict {
	return Verdict{Reason: reason}
}

type Service interface {
	Verify(ctx context.Context, payment *domain.Payment, hash string) (Verdict, error)
}

type Verifier struct {
	explorer      explorer.Explorer
	tokenContract string
	decimals      int32
}

func New(explorer explorer.Explorer, tokenContract string, decimals int32) *Verifier {
	return &Verifier{
		explorer:      explorer,
		tokenContract: tokenContract,
		decimals:      decimals,
	}
}

// Verify decides whether the transaction pays for the payment. It never writes.
func (v *Verifier) Verify(ctx context.Context, payment *domain.Payment, hash string) (Verdict, error) {
	tx, err := v.explorer.FetchTransfer(ctx, hash)
	if err != nil {
		zap.L().Warn("can't fetch transaction", zap.String("payment_id", payment.ID), zap.String("hash", hash), zap.Error(err))
		return Verdict{}, fmt.Errorf("%w: %w", ErrVerification, err)
	}

	if !tx.Success {
		return rejected(ReasonFailedOnChain), nil
	}

	var onToken []explorer.Transfer
	for _, transfer := range tx.Transfers {
		if transfer.Contract == v.tokenContract {
			onToken = append(onToken, transfer)
		}
	}
	if len(onToken) == 0 {
		return rejected(ReasonWrongToken), nil
	}

	var toWallet []explorer.Transfer
	for _, transfer := range onToken {
		if transfer.To == payment.WalletAddress {
			toWallet = append(toWallet, transfer)
		}
	}
	if len(toWallet) == 0 {
		return rejected(ReasonWrongRecipient), nil
	}

	var best decimal.Decimal
	for _, transfer := range toWallet {
		amount := decimal.NewFromBigInt(transfer.Amount, -v.decimals)
		if amount.GreaterThanOrEqual(payment.Amount) {
			return verified(amount), nil
		}
		if amount.GreaterThan(best) {
			best = amount
		}
	}
	return rejected(fmt.Sprintf(reasonInsufficientTmpl, best.String(), payment.Amount.String())), nil
}
