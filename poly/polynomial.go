// Coefficient arithmetic on Polynomial: ring operations, calculus, and the
// domain translation used by piecewise shifting.
package poly

// Add returns p + q. Coefficients are summed over the shorter vector and the
// remaining higher-degree coefficients are copied from the longer operand.
// The result keeps max(len(p), len(q)) coefficients even when leading terms
// cancel; rely on Degree, not vector length, for the effective degree.
func (p Polynomial) Add(q Polynomial) Polynomial {
	a, b := p.Coefficients(), q.Coefficients()
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]float64, len(a))
	copy(out, a)
	for i := range b {
		out[i] += b[i]
	}

	return Polynomial{coeffs: out}
}

// Sub returns p − q, mirroring Add: shared positions subtract coefficient-
// wise, and q's excess coefficients are copied in negated.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	a, b := p.Coefficients(), q.Coefficients()
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]float64, n)
	for i := range out {
		if i < len(a) {
			out[i] += a[i]
		}
		if i < len(b) {
			out[i] -= b[i]
		}
	}

	return Polynomial{coeffs: out}
}

// Neg returns −p.
func (p Polynomial) Neg() Polynomial {
	out := p.Coefficients()
	for i := range out {
		out[i] = -out[i]
	}

	return Polynomial{coeffs: out}
}

// AddScalar returns p + c.
func (p Polynomial) AddScalar(c float64) Polynomial {
	out := p.Coefficients()
	out[0] += c

	return Polynomial{coeffs: out}
}

// Scale returns c·p.
func (p Polynomial) Scale(c float64) Polynomial {
	out := p.Coefficients()
	for i := range out {
		out[i] *= c
	}

	return Polynomial{coeffs: out}
}

// Mul returns the product p·q by coefficient convolution. The result holds
// len(p)+len(q)−1 coefficients.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	a, b := p.Coefficients(), q.Coefficients()
	out := make([]float64, len(a)+len(b)-1)
	for i, ca := range a {
		if ca == 0 {
			continue
		}
		for j, cb := range b {
			out[i+j] += ca * cb
		}
	}

	return Polynomial{coeffs: out}
}

// Derivative returns p′. The derivative of any degree-0 polynomial is the
// zero polynomial.
func (p Polynomial) Derivative() Polynomial {
	c := p.trimmed()
	if len(c) <= 1 {
		return Zero()
	}
	out := make([]float64, len(c)-1)
	for i := 1; i < len(c); i++ {
		out[i-1] = float64(i) * c[i]
	}

	return Polynomial{coeffs: out}
}

// Shift returns the polynomial q with q(x) = p(x + t), expanded via the
// binomial theorem. Piecewise shifting uses it to translate a value
// function into the time frame of an upstream decision.
func (p Polynomial) Shift(t float64) Polynomial {
	if t == 0 {
		return Polynomial{coeffs: p.Coefficients()}
	}
	c := p.trimmed()
	out := make([]float64, len(c))
	// Accumulate cᵢ·(x+t)ⁱ degree by degree, maintaining the running power
	// (x+t)ⁱ as its own coefficient vector.
	power := []float64{1}
	out[0] = c[0]
	for i := 1; i < len(c); i++ {
		next := make([]float64, len(power)+1)
		for j, pc := range power {
			next[j] += pc * t
			next[j+1] += pc
		}
		power = next
		if c[i] == 0 {
			continue
		}
		for j, pc := range power {
			out[j] += c[i] * pc
		}
	}

	return Polynomial{coeffs: out}
}
