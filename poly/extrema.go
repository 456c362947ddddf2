package poly

// extremaAt evaluates p at the interval bounds and at the supplied critical
// points, keeping only criticals inside [left, right), and returns the
// minimum and maximum observed value.
func (p Polynomial) extremaAt(criticals []float64, left, right float64) (float64, float64) {
	lo, hi := p.Value(left), p.Value(right)
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, x := range criticals {
		if x < left || x >= right {
			continue
		}
		v := p.Value(x)
		if v < lo {
			lo = v
		} else if v > hi {
			hi = v
		}
	}

	return lo, hi
}

// Extrema returns the minimum and maximum of p over [left, right], computed
// in closed form: the bounds are always candidates, plus any critical point
// inside [left, right). Supported only while p′ has degree ≤ 2; beyond that
// it returns ErrUnsupportedDegree and the caller must deliberately fall back
// to ExtremaNumeric. ErrBadInterval is returned when left ≥ right.
func (p Polynomial) Extrema(left, right float64) (float64, float64, error) {
	if left >= right {
		return 0, 0, ErrBadInterval
	}
	criticals, err := p.CriticalPoints()
	if err != nil {
		return 0, 0, err
	}
	lo, hi := p.extremaAt(criticals, left, right)

	return lo, hi, nil
}

// ExtremaNumeric returns the minimum and maximum of p over [left, right]
// with critical points located numerically via the companion matrix of p′.
// It has no degree ceiling; use it as the explicit fallback when Extrema
// reports ErrUnsupportedDegree.
func (p Polynomial) ExtremaNumeric(left, right float64) (float64, float64, error) {
	if left >= right {
		return 0, 0, ErrBadInterval
	}
	criticals, err := p.CriticalPointsNumeric()
	if err != nil {
		return 0, 0, err
	}
	lo, hi := p.extremaAt(criticals, left, right)

	return lo, hi, nil
}
