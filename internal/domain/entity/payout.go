package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
)

// DefaultPayoutMultiplier returns the stake plus equal winnings
const DefaultPayoutMultiplier int64 = 2

// DefaultColors are the colors accepted when no list is configured
var DefaultColors = []string{"red", "black", "green"}

// PayoutTable holds the accepted colors and the multiplier paid on each
type PayoutTable struct {
	defaultMultiplier int64
	multipliers       map[string]int64
	colors            map[string]struct{}
	ordered           []string
}

// NewPayoutTable builds a payout table. An empty color list accepts any non-empty color.
func NewPayoutTable(defaultMultiplier int64, colors []string, overrides map[string]int64) (*PayoutTable, error) {
	if defaultMultiplier <= 0 {
		return nil, fmt.Errorf("%w: payout multiplier must be positive", errs.ErrInvalidInput)
	}

	table := &PayoutTable{
		defaultMultiplier: defaultMultiplier,
		multipliers:       make(map[string]int64, len(overrides)),
		colors:            make(map[string]struct{}, len(colors)),
	}
	for _, c := range colors {
		c = normalizeColor(c)
		if c == "" {
			continue
		}
		if _, dup := table.colors[c]; !dup {
			table.colors[c] = struct{}{}
			table.ordered = append(table.ordered, c)
		}
	}
	for c, m := range overrides {
		if m <= 0 {
			return nil, fmt.Errorf("%w: multiplier for %q must be positive", errs.ErrInvalidInput, c)
		}
		table.multipliers[normalizeColor(c)] = m
	}
	return table, nil
}

// DefaultPayoutTable pays 2x on red, black and green
func DefaultPayoutTable() *PayoutTable {
	table, _ := NewPayoutTable(DefaultPayoutMultiplier, DefaultColors, nil)
	return table
}

// ValidateColor normalizes the color and checks it against the accepted list
func (p *PayoutTable) ValidateColor(color string) (string, error) {
	c := normalizeColor(color)
	if c == "" {
		return "", errs.ErrInvalidColor
	}
	if len(p.colors) > 0 {
		if _, ok := p.colors[c]; !ok {
			return "", fmt.Errorf("%w: %q", errs.ErrInvalidColor, color)
		}
	}
	return c, nil
}

// Multiplier returns the payout multiplier for a winning color
func (p *PayoutTable) Multiplier(color string) int64 {
	if m, ok := p.multipliers[color]; ok {
		return m
	}
	return p.defaultMultiplier
}

// Payout computes what a bet earns for the declared result; losers earn zero
func (p *PayoutTable) Payout(bet *Bet, resultColor string) (int64, error) {
	if !bet.Wins(resultColor) {
		return 0, nil
	}
	return MultiplyAmount(bet.Amount, p.Multiplier(resultColor))
}

// Colors returns the accepted colors in configuration order
func (p *PayoutTable) Colors() []string {
	return append([]string(nil), p.ordered...)
}

func normalizeColor(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
