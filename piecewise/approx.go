// Compression passes: lower-envelope linear approximation of narrow piece
// runs, and conservative integer rounding of degenerate pieces.
package piecewise

import (
	"math"

	"github.com/katalvlaran/routeval/poly"
)

// LinearApproximation compresses runs of consecutive narrow pieces — each of
// width < interval — into a single replacement piece, bounding
// representation growth between recursion sweeps.
//
// A merged run spanning [runLo, runHi) with endpoint values v₁ = f(runLo)
// and v₂ = f⁻(runHi) becomes:
//
//   - the constant v₁ when v₁ ≤ v₂ (already non-decreasing: collapse to the
//     lower value);
//   - the straight line through (runLo, v₁) and (runHi, v₂) otherwise.
//
// The replacement is then clamped down so it never exceeds the original
// function at any breakpoint the run swallowed: value functions shrink under
// this pass, never grow (the lower-envelope guarantee the recursion relies
// on for conservative approximations).
//
// Runs of a single piece pass through untouched, the terminal piece is
// always preserved to keep the boundary condition stable, and the result is
// simplified. A non-positive interval degenerates to plain Simplify.
func (f *Piecewise) LinearApproximation(interval float64) *Piecewise {
	n := len(f.pieces)
	if interval <= 0 || n <= 1 {
		return f.Simplify()
	}

	out := make([]Piece, 0, n)
	i := 0
	for i < n-1 {
		if f.upper(i)-f.pieces[i].Lo >= interval {
			out = append(out, f.pieces[i])
			i++

			continue
		}
		// Extend the run while pieces stay narrow; the terminal piece never
		// joins a run.
		j := i + 1
		for j < n-1 && f.upper(j)-f.pieces[j].Lo < interval {
			j++
		}
		if j == i+1 {
			out = append(out, f.pieces[i])
			i = j

			continue
		}

		runLo, runHi := f.pieces[i].Lo, f.upper(j-1)
		v1 := f.pieces[i].Fn.Value(runLo)
		v2 := f.pieces[j-1].Fn.Value(runHi)

		var fn poly.Polynomial
		if v1 <= v2 {
			fn = poly.Constant(v1)
		} else {
			fn = poly.Line(runLo, v1, runHi, v2)
		}

		// Clamp below the original at every swallowed breakpoint.
		excess := 0.0
		for k := i + 1; k < j; k++ {
			b := f.pieces[k].Lo
			if d := fn.Value(b) - f.pieces[k].Fn.Value(b); d > excess {
				excess = d
			}
		}
		if excess > 0 {
			fn = fn.AddScalar(-excess)
		}

		out = append(out, Piece{Lo: runLo, Fn: fn})
		i = j
	}
	out = append(out, f.pieces[n-1])

	return (&Piecewise{pieces: out, end: f.end}).Simplify()
}

// RoundTrivial snaps degenerate pieces to integer constants without ever
// increasing the running maximum, so the documented monotonicity of value
// functions survives the rounding:
//
//   - a constant piece rounds to the nearest integer, capped by the running
//     maximum;
//   - a non-constant piece whose rounded endpoint values are non-decreasing
//     collapses to its (capped) rounded left value;
//   - any other piece — including one stretching to +Inf — is kept as is.
func (f *Piecewise) RoundTrivial() *Piecewise {
	out := make([]Piece, len(f.pieces))
	lastMax := math.Round(f.pieces[0].Fn.Value(f.pieces[0].Lo))
	for i, pc := range f.pieces {
		hi := f.upper(i)
		switch {
		case pc.Fn.Degree() == 0:
			v := math.Round(pc.Fn.Value(pc.Lo))
			if v > lastMax {
				v = lastMax
			}
			out[i] = Piece{Lo: pc.Lo, Fn: poly.Constant(v)}
			lastMax = v
		case !math.IsInf(hi, 1):
			vl := math.Round(pc.Fn.Value(pc.Lo))
			vr := math.Round(pc.Fn.Value(hi))
			if vl <= vr {
				if vl > lastMax {
					vl = lastMax
				}
				out[i] = Piece{Lo: pc.Lo, Fn: poly.Constant(vl)}
				lastMax = vl
			} else {
				out[i] = pc
			}
		default:
			out[i] = pc
		}
	}

	return &Piecewise{pieces: out, end: f.end}
}
