package entity

import (
	"fmt"
	"math"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
)

// ValidateAmount checks that an amount is a positive number of minor units
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", errs.ErrInvalidAmount, amount)
	}
	return nil
}

// AddAmounts returns a+b, failing instead of wrapping around
func AddAmounts(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, errs.ErrAmountOverflow
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, errs.ErrAmountOverflow
	}
	return a + b, nil
}

// MultiplyAmount returns amount*factor for non-negative operands, failing on overflow
func MultiplyAmount(amount, factor int64) (int64, error) {
	if amount < 0 || factor < 0 {
		return 0, errs.ErrInvalidAmount
	}
	if amount == 0 || factor == 0 {
		return 0, nil
	}
	if amount > math.MaxInt64/factor {
		return 0, errs.ErrAmountOverflow
	}
	return amount * factor, nil
}
