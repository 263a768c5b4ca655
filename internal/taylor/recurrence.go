package taylor

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/bigmath"
)

// The functions in this file compute coefficient k of a derived series from
// coefficients 0..k of their inputs and 0..k-1 of their own output. Callers
// must visit k = 0, 1, 2, ... in order: k = 0 evaluates the elementary
// function at the expansion point and checks its preconditions, k > 0 runs
// the recurrence.

func intF(n int, prec uint) *big.Float {
	return newF(prec).SetInt64(int64(n))
}

// chain returns (1/k) Σ_{j=1..m} j·u[j]·g[k-j], the convolution behind
// every f(u) with df/dt = g·du/dt.
func chain(g, u Jet, k, m int) *big.Float {
	prec := u.Prec()
	sum, term := newF(prec), newF(prec)
	for j := 1; j <= m; j++ {
		term.Mul(u[j], g[k-j])
		if j > 1 {
			term.Mul(term, intF(j, prec))
		}
		sum.Add(sum, term)
	}
	return sum.Quo(sum, intF(k, prec))
}

// forward returns f[k] given df/du = g and u.
func forward(g, u Jet, k int) *big.Float {
	return chain(g, u, k, k)
}

// backward recovers u[k] given f[k] and df/du = g, solving the forward
// recurrence for its j = k term: u[k] = (f[k] - chain_{k-1}) / g[0].
func backward(f, g, u Jet, k int) *big.Float {
	r := newF(u.Prec()).Sub(f[k], chain(g, u, k, k-1))
	return r.Quo(r, g[0])
}

// Product returns coefficient k of u·v.
func Product(u, v Jet, k int) *big.Float {
	prec := u.Prec()
	sum, term := newF(prec), newF(prec)
	for j := 0; j <= k; j++ {
		sum.Add(sum, term.Mul(u[j], v[k-j]))
	}
	return sum
}

// Square returns coefficient k of u², folding the symmetric terms of the
// product convolution.
func Square(u Jet, k int) *big.Float {
	prec := u.Prec()
	sum, term := newF(prec), newF(prec)
	for j := 0; 2*j < k; j++ {
		sum.Add(sum, term.Mul(u[j], u[k-j]))
	}
	sum.SetMantExp(sum, 1)
	if k%2 == 0 {
		sum.Add(sum, term.Mul(u[k/2], u[k/2]))
	}
	return sum
}

// Quotient sets q[k] for q = u/v. v[0] must be non-zero and q must not
// alias u or v.
func Quotient(q, u, v Jet, k int) error {
	if k == 0 {
		if err := checkAlias("quotient", q, u, v); err != nil {
			return err
		}
		if v[0].Sign() == 0 {
			return domainErr("quotient", k, v[0], ErrDivisionByZero)
		}
		q[0].Quo(u[0], v[0])
		return nil
	}

	prec := q.Prec()
	sum, term := newF(prec).Set(u[k]), newF(prec)
	for j := 1; j <= k; j++ {
		sum.Sub(sum, term.Mul(v[j], q[k-j]))
	}
	q[k].Quo(sum, v[0])
	return nil
}

// Reciprocal sets r[k] for r = 1/v.
func Reciprocal(r, v Jet, k int) error {
	if k == 0 {
		if err := checkAlias("reciprocal", r, v); err != nil {
			return err
		}
		if v[0].Sign() == 0 {
			return domainErr("reciprocal", k, v[0], ErrDivisionByZero)
		}
		r[0].Quo(intF(1, r.Prec()), v[0])
		return nil
	}

	prec := r.Prec()
	sum, term := newF(prec), newF(prec)
	for j := 1; j <= k; j++ {
		sum.Sub(sum, term.Mul(v[j], r[k-j]))
	}
	r[k].Quo(sum, v[0])
	return nil
}

// Sqrt sets r[k] for r = √u. u[0] must be positive.
func Sqrt(r, u Jet, k int) error {
	if k == 0 {
		if err := checkAlias("sqrt", r, u); err != nil {
			return err
		}
		if u[0].Sign() <= 0 {
			return domainErr("sqrt", k, u[0], ErrDomain)
		}
		r[0].Sqrt(u[0])
		return nil
	}

	prec := r.Prec()
	sum, term := newF(prec), newF(prec)
	for j := 1; 2*j < k; j++ {
		sum.Add(sum, term.Mul(r[j], r[k-j]))
	}
	sum.SetMantExp(sum, 1)
	if k%2 == 0 {
		sum.Add(sum, term.Mul(r[k/2], r[k/2]))
	}
	sum.Sub(u[k], sum)
	term.Add(r[0], r[0])
	r[k].Quo(sum, term)
	return nil
}

// Power sets p[k] for p = u^a with a real exponent. u[0] must be positive.
//
// From u·p' = a·p·u':  k·u[0]·p[k] = Σ_{j=0..k-1} (a(k-j) - j)·u[k-j]·p[j].
func Power(p, u Jet, a *big.Float, k int) error {
	if k == 0 {
		if err := checkAlias("pow", p, u); err != nil {
			return err
		}
		if u[0].Sign() <= 0 {
			return domainErr("pow", k, u[0], ErrDomain)
		}
		base := newF(p.Prec()).Set(u[0])
		p[0].Set(bigmath.Pow(base, a))
		return nil
	}

	prec := p.Prec()
	sum, term, w := newF(prec), newF(prec), newF(prec)
	for j := 0; j < k; j++ {
		w.Mul(a, intF(k-j, prec))
		w.Sub(w, intF(j, prec))
		term.Mul(u[k-j], p[j])
		sum.Add(sum, term.Mul(term, w))
	}
	term.Mul(u[0], intF(k, prec))
	p[k].Quo(sum, term)
	return nil
}

// Exp sets e[k] for e = exp(u).
func Exp(e, u Jet, k int) error {
	if k == 0 {
		if err := checkAlias("exp", e, u); err != nil {
			return err
		}
		e[0].Set(bigmath.Exp(newF(e.Prec()).Set(u[0])))
		return nil
	}
	e[k].Set(forward(e, u, k))
	return nil
}

// Ln sets l[k] for l = ln(u). u[0] must be positive. Since u = exp(l), l is
// recovered by running the exponential recurrence backward.
func Ln(l, u Jet, k int) error {
	if k == 0 {
		if err := checkAlias("ln", l, u); err != nil {
			return err
		}
		if u[0].Sign() <= 0 {
			return domainErr("ln", k, u[0], ErrDomain)
		}
		l[0].Set(bigmath.Log(newF(l.Prec()).Set(u[0])))
		return nil
	}
	l[k].Set(backward(u, u, l, k))
	return nil
}
