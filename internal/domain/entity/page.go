package entity

// ListLimits bounds the size of listings
type ListLimits struct {
	Default int
	Max     int
}

// DefaultListLimits returns 20 rows by default and at most 200
func DefaultListLimits() ListLimits {
	return ListLimits{Default: 20, Max: 200}
}

// Clamp applies the default to non-positive requests and caps the rest
func (l ListLimits) Clamp(requested int) int {
	if requested <= 0 {
		requested = l.Default
	}
	if l.Max > 0 && requested > l.Max {
		requested = l.Max
	}
	return requested
}
