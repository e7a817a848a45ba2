package matcher

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MatchingConfig holds the four tolerances consumed by the rule cascade.
//
// Rule 1 (exact) takes no tolerance. Rule 2 accepts an exact amount within a
// date window; rule 3 accepts an exact date within an amount window; rule 4
// accepts both windows at once. All values are normalized on construction:
// day tolerances are floored at zero and amount tolerances are kept absolute.
type MatchingConfig struct {
	Rule2DateToleranceDays int
	Rule3AmountTolerance   decimal.Decimal
	Rule4DateToleranceDays int
	Rule4AmountTolerance   decimal.Decimal
}

// DefaultMatchingConfig returns the fixed default tolerances:
// 1 day for rule 2, 5.00 for rule 3, 2 days and 5.00 for rule 4.
func DefaultMatchingConfig() *MatchingConfig {
	return &MatchingConfig{
		Rule2DateToleranceDays: 1,
		Rule3AmountTolerance:   decimal.RequireFromString("5.00"),
		Rule4DateToleranceDays: 2,
		Rule4AmountTolerance:   decimal.RequireFromString("5.00"),
	}
}

// Normalize clamps negative overrides: date tolerances floor at 0 and
// amount tolerances are absolute-valued.
func (mc *MatchingConfig) Normalize() {
	if mc.Rule2DateToleranceDays < 0 {
		mc.Rule2DateToleranceDays = 0
	}
	if mc.Rule4DateToleranceDays < 0 {
		mc.Rule4DateToleranceDays = 0
	}
	mc.Rule3AmountTolerance = mc.Rule3AmountTolerance.Abs()
	mc.Rule4AmountTolerance = mc.Rule4AmountTolerance.Abs()
}

// String returns a human-readable description of the configuration.
func (mc *MatchingConfig) String() string {
	return fmt.Sprintf("MatchingConfig{Rule2Date: %dd, Rule3Amount: %s, Rule4Date: %dd, Rule4Amount: %s}",
		mc.Rule2DateToleranceDays, mc.Rule3AmountTolerance.String(),
		mc.Rule4DateToleranceDays, mc.Rule4AmountTolerance.String())
}
