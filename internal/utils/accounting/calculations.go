package accounting

import (
	"errors"
	"fmt"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Validation failures for a candidate line set. These are the single source of
// truth for "is this a legal journal entry"; every create/update runs them
// before touching storage.
var (
	ErrTooFewLines    = errors.New("entry must have at least two lines")
	ErrMissingAccount = errors.New("entry line has no account reference")
	ErrAmbiguousLine  = errors.New("entry line has both debit and credit amounts")
	ErrEmptyLine      = errors.New("entry line has neither debit nor credit amount")
	ErrNegativeAmount = errors.New("entry line amounts must not be negative")
	ErrUnbalanced     = errors.New("entry debits and credits do not balance")
)

// BalanceTolerance absorbs 2-decimal rounding noise: 0.01 currency units.
var BalanceTolerance = decimal.New(1, -2)

// IGVRate is the Peruvian general sales tax rate (18%) used by the event
// mappers' tax-inclusive splits.
var IGVRate = decimal.New(18, -2)

// ValidateLines enforces the structural and balance invariants on a candidate
// line set. Pure; no side effects.
func ValidateLines(lines []domain.EntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewLines, len(lines))
	}
	for i, line := range lines {
		if line.AccountID == "" && line.AccountCode == "" {
			return fmt.Errorf("%w: line %d", ErrMissingAccount, i)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d", ErrNegativeAmount, i)
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet && creditSet {
			return fmt.Errorf("%w: line %d", ErrAmbiguousLine, i)
		}
		if !debitSet && !creditSet {
			return fmt.Errorf("%w: line %d", ErrEmptyLine, i)
		}
	}
	debitTotal, creditTotal := SumLines(lines)
	if diff := debitTotal.Sub(creditTotal).Abs(); diff.GreaterThan(BalanceTolerance) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrUnbalanced, debitTotal, creditTotal)
	}
	return nil
}

// SumLines returns the debit and credit totals of a line set.
func SumLines(lines []domain.EntryLine) (decimal.Decimal, decimal.Decimal) {
	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	for _, line := range lines {
		debitTotal = debitTotal.Add(line.Debit)
		creditTotal = creditTotal.Add(line.Credit)
	}
	return debitTotal, creditTotal
}

// Balanced reports whether stored totals reconcile within BalanceTolerance.
func Balanced(debitTotal, creditTotal decimal.Decimal) bool {
	return debitTotal.Sub(creditTotal).Abs().LessThanOrEqual(BalanceTolerance)
}

// SplitTaxInclusive splits a tax-inclusive total into net and tax at the given
// rate. The net is rounded to 2 decimals first and the tax derived by
// subtraction, so net + tax always reconciles with the original total.
func SplitTaxInclusive(total, rate decimal.Decimal) (net, tax decimal.Decimal) {
	divisor := decimal.New(1, 0).Add(rate)
	net = total.Div(divisor).Round(2)
	tax = total.Sub(net)
	return net, tax
}

// SplitIGV splits a tax-inclusive total at the standard IGV rate.
func SplitIGV(total decimal.Decimal) (net, tax decimal.Decimal) {
	return SplitTaxInclusive(total, IGVRate)
}
