package poly

// Compose substitutes sp for p's variable, producing the bivariate
// F(x, ξ) = p(sp(x, ξ)) by multinomial expansion.
//
// The expansion runs degree by degree: the running power spⁱ is kept as a
// coefficient-polynomial vector and multiplied by sp once per step, so each
// partial product is reused rather than recomputed from scratch. Cost grows
// as Degree(p) × DegreeXi(sp) output coefficients, each a convolution of
// Polynomials.
func (p Polynomial) Compose(sp StochasticPolynomial) StochasticPolynomial {
	c := p.trimmed()
	degXi := sp.DegreeXi()
	spc := sp.coeffs
	if len(spc) > degXi+1 {
		spc = spc[:degXi+1]
	}

	out := make([]Polynomial, (len(c)-1)*degXi+1)
	for i := range out {
		out[i] = Zero()
	}
	out[0] = Constant(c[0])

	// power holds spⁱ as ξ-power-indexed coefficient polynomials.
	power := []Polynomial{Constant(1)}
	for i := 1; i < len(c); i++ {
		power = mulXiVectors(power, spc)
		if c[i] == 0 {
			continue
		}
		for j, q := range power {
			if q.IsZero() {
				continue
			}
			out[j] = out[j].Add(q.Scale(c[i]))
		}
	}

	return StochasticPolynomial{coeffs: out}
}

// mulXiVectors convolves two ξ-power-indexed coefficient-polynomial vectors:
// the ξ-side of a StochasticPolynomial product.
func mulXiVectors(a, b []Polynomial) []Polynomial {
	out := make([]Polynomial, len(a)+len(b)-1)
	for i := range out {
		out[i] = Zero()
	}
	for i, pa := range a {
		if pa.IsZero() {
			continue
		}
		for j, pb := range b {
			if pb.IsZero() {
				continue
			}
			out[i+j] = out[i+j].Add(pa.Mul(pb))
		}
	}

	return out
}
