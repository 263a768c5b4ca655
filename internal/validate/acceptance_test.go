package validate_test

import (
	"context"
	"math"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/taylorsim/internal/ad"
	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/models"
	"github.com/san-kum/taylorsim/internal/roots"
	"github.com/san-kum/taylorsim/internal/taylor"
	"github.com/san-kum/taylorsim/internal/tsm"
	"github.com/san-kum/taylorsim/internal/validate"
)

func jetOf(prec uint, values ...string) taylor.Jet {
	j := make(taylor.Jet, len(values))
	for i, v := range values {
		j[i] = bigmath.MustParse(v, prec)
	}
	return j
}

var _ = Describe("Identity catalogue", func() {
	DescribeTable("holds at every default point",
		func(order int, prec uint, slack int) {
			s, err := ad.NewSession(order, prec)
			Expect(err).NotTo(HaveOccurred())
			xs, err := validate.Points(s, validate.DefaultPoints)
			Expect(err).NotTo(HaveOccurred())

			r := validate.RunPoints(s, xs, bigmath.Tolerance(prec, slack))
			Expect(r.Failures()).To(BeEmpty())
			Expect(r.Passed).To(BeNumerically(">", r.Skipped))
			Expect(r.MaxLog10).To(BeNumerically("<", -float64(bigmath.Digits(prec)-slack)))
		},
		Entry("dual numbers at 64 bits", 2, uint(64), 6),
		Entry("order 6 at 128 bits", 6, uint(128), 8),
		Entry("order 12 at 256 bits", 12, uint(256), 10),
		Entry("order 20 at 512 bits", 20, uint(512), 12),
	)

	It("skips rather than fails outside a domain", func() {
		s, _ := ad.NewSession(4, 128)
		r := validate.Run(s, validate.SamplePoint(s, bigmath.NewFloat(-1, 128)), bigmath.Tolerance(128, 8))
		Expect(r.OK()).To(BeTrue())
		Expect(r.Skipped).To(BeNumerically(">", 0))
		for _, c := range r.Checks {
			if c.Status == validate.Skipped {
				Expect(c.Reason).To(HavePrefix("requires "))
			}
		}
	})
})

var _ = Describe("Recurrence base cases", func() {
	const prec = 128
	u := jetOf(prec, "0.75", "0.5", "-1", "2")
	v := jetOf(prec, "-1.25", "3", "0.5", "1")

	It("matches direct evaluation at k=0", func() {
		Expect(taylor.Product(u, v, 0).Cmp(new(big.Float).Mul(u[0], v[0]))).To(BeZero())

		q := taylor.NewJet(4, prec)
		Expect(taylor.Quotient(q, u, v, 0)).To(Succeed())
		Expect(q[0].Cmp(new(big.Float).SetPrec(prec).Quo(u[0], v[0]))).To(BeZero())

		a := bigmath.MustParse("-7/3", prec)
		p := taylor.NewJet(4, prec)
		Expect(taylor.Power(p, u, a, 0)).To(Succeed())
		diff := new(big.Float).Sub(p[0], bigmath.Pow(u[0], a))
		Expect(bigmath.Log10(diff)).To(BeNumerically("<", -35))

		e := taylor.NewJet(4, prec)
		Expect(taylor.Exp(e, u, 0)).To(Succeed())
		Expect(e[0].Cmp(bigmath.Exp(u[0]))).To(BeZero())
	})

	It("refuses a zero divisor instead of producing infinity", func() {
		q := taylor.NewJet(4, prec)
		err := taylor.Quotient(q, u, jetOf(prec, "0", "1", "0", "0"), 0)
		Expect(err).To(MatchError(taylor.ErrDivisionByZero))

		var de *taylor.DomainError
		Expect(err).To(BeAssignableToTypeOf(de))
		Expect(q[0].IsInf()).To(BeFalse())
	})
})

var _ = Describe("Scenarios", func() {
	It("squares through Sqr and Mul identically", func() {
		s, _ := ad.NewSession(4, 128)
		x := jetOf(128, "2", "1", "0", "0")
		sq := s.Sqr(s.Jet(), x)
		mul := s.Mul(s.Jet(), x, x)
		Expect(sq.Float64s()).To(Equal([]float64{4, 4, 1, 0}))
		for k := range sq {
			Expect(sq[k].Cmp(mul[k])).To(BeZero())
		}
	})

	It("steps exponential growth to e^0.1", func() {
		const prec = 128
		m := models.NewExponential()
		cfg := tsm.Config{Order: 8, Step: bigmath.MustParse("0.1", prec), Steps: 1, Prec: prec}
		res, err := tsm.Run(context.Background(), m, []*big.Float{bigmath.NewFloat(1, prec)}, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.States).To(HaveLen(2))

		got, _ := res.Final()[0].Float64()
		Expect(got).To(BeNumerically("~", math.Exp(0.1), 1e-14))
	})

	It("evaluates 1 + 3h + 2h³ at h=2 exactly", func() {
		v, err := taylor.Horner(jetOf(64, "1", "3", "0", "2"), bigmath.NewFloat(2, 64))
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Cmp(bigmath.NewFloat(23, 64))).To(BeZero())
	})

	It("polishes √2 with Newton from 1.4", func() {
		const prec = 128
		p, err := roots.Lookup("sqrt2")
		Expect(err).NotTo(HaveOccurred())
		tol := bigmath.MustParse("1e-12", prec)
		r, err := roots.Polish(p.F, bigmath.MustParse("1.4", prec), roots.Options{Degree: 1, MaxIter: 20, FTol: tol, XTol: tol}, prec)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Converged).To(BeTrue())

		got, _ := r.Root.Float64()
		Expect(got).To(BeNumerically("~", math.Sqrt2, 1e-12))
	})
})
