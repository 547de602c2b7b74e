package models_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/swarmdyn/internal/dynamo"
	"github.com/san-kum/swarmdyn/internal/models"
)

const dt = 0.1

var _ = BeforeEach(func() {
	dynamo.ResetIDs()
})

var _ = Describe("DoubleIntegrator", func() {
	It("is a 4-state, 2-control point mass", func() {
		m := models.NewDoubleIntegrator(dt)
		Expect(m.StateDim()).To(Equal(4))
		Expect(m.ControlDim()).To(Equal(2))
		Expect(m.Dt()).To(Equal(dt))
	})

	It("integrates velocity into position over one step", func() {
		m := models.NewDoubleIntegrator(dt)
		next, err := dynamo.Step(m, dynamo.State{0, 0, 1, 0}, dynamo.Control{0, 0})
		Expect(err).NotTo(HaveOccurred())
		Expect(next).To(HaveLen(4))
		Expect(next[0]).To(BeNumerically("~", 0.1, 1e-12))
		Expect(next[1]).To(BeZero())
		Expect(next[2]).To(Equal(1.0))
		Expect(next[3]).To(BeZero())
	})

	It("has velocity-to-position continuous jacobian entries only", func() {
		m := models.NewDoubleIntegrator(dt)
		A, B, err := dynamo.LinearizeContinuous(m, dynamo.State{0, 0, 1, 0}, dynamo.Control{0, 0})
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				want := 0.0
				if (i == 0 && j == 2) || (i == 1 && j == 3) {
					want = 1.0
				}
				Expect(A.At(i, j)).To(Equal(want), "A[%d,%d]", i, j)
			}
		}
		Expect(B.At(2, 0)).To(Equal(1.0))
		Expect(B.At(3, 1)).To(Equal(1.0))
	})

	It("discretizes as I + dt*Ac", func() {
		m := models.NewDoubleIntegrator(dt)
		A, _, err := dynamo.Linearize(m, dynamo.State{0, 0, 1, 0}, dynamo.Control{0, 0})
		Expect(err).NotTo(HaveOccurred())

		Expect(A.At(0, 0)).To(Equal(1.0))
		Expect(A.At(0, 2)).To(BeNumerically("~", dt, 1e-15))
		Expect(A.At(1, 3)).To(BeNumerically("~", dt, 1e-15))
		Expect(A.At(2, 2)).To(Equal(1.0))
	})
})

var _ = Describe("Car", func() {
	It("moves along its heading at the commanded speed", func() {
		m := models.NewCar(dt)
		theta := math.Pi / 3
		dx, err := m.Derive(dynamo.State{5, -2, theta}, dynamo.Control{2, 0.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(dx[0]).To(BeNumerically("~", 2*math.Cos(theta), 1e-12))
		Expect(dx[1]).To(BeNumerically("~", 2*math.Sin(theta), 1e-12))
		Expect(dx[2]).To(Equal(0.5))
	})

	It("rejects inputs of the wrong dimension", func() {
		m := models.NewCar(dt)
		_, err := m.Derive(dynamo.State{0, 0}, dynamo.Control{1, 0})
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
	})
})

var _ = Describe("Unicycle", func() {
	It("accelerates and turns from its controls", func() {
		m := models.NewUnicycle(dt)
		dx, err := m.Derive(dynamo.State{0, 0, 1.5, math.Pi / 4}, dynamo.Control{0.3, -0.2})
		Expect(err).NotTo(HaveOccurred())
		Expect(dx[0]).To(BeNumerically("~", 1.5*math.Cos(math.Pi/4), 1e-12))
		Expect(dx[1]).To(BeNumerically("~", 1.5*math.Sin(math.Pi/4), 1e-12))
		Expect(dx[2]).To(Equal(0.3))
		Expect(dx[3]).To(Equal(-0.2))
	})

	It("differentiates consistently with forward differences", func() {
		m := models.NewUnicycle(dt)
		x := dynamo.State{1, -1, 2.0, 0.7}
		u := dynamo.Control{0.5, 0.1}

		Ad, Bd, err := dynamo.LinearizeContinuous(m, x, u)
		Expect(err).NotTo(HaveOccurred())
		Af, Bf, err := dynamo.LinearizeForwardDifference(m, x, u)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				Expect(Ad.At(i, j)).To(BeNumerically("~", Af.At(i, j), 1e-4))
			}
			for j := 0; j < 2; j++ {
				Expect(Bd.At(i, j)).To(BeNumerically("~", Bf.At(i, j), 1e-4))
			}
		}
	})
})

var _ = Describe("AnalyticUnicycle", func() {
	It("matches the differentiated Unicycle exactly", func() {
		analytic := models.NewAnalyticUnicycle(dt)
		plain := models.NewUnicycle(dt)

		points := []struct {
			x dynamo.State
			u dynamo.Control
		}{
			{dynamo.State{0, 0, 0, 0}, dynamo.Control{0, 0}},
			{dynamo.State{3, -1, 2.5, 1.1}, dynamo.Control{0.4, -0.3}},
			{dynamo.State{-2, 7, 0.1, -2.8}, dynamo.Control{-1, 1}},
		}

		for _, p := range points {
			Aa, Ba, err := dynamo.LinearizeContinuous(analytic, p.x, p.u)
			Expect(err).NotTo(HaveOccurred())
			Ap, Bp, err := dynamo.LinearizeContinuous(plain, p.x, p.u)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					Expect(Aa.At(i, j)).To(BeNumerically("~", Ap.At(i, j), 1e-12))
				}
				for j := 0; j < 2; j++ {
					Expect(Ba.At(i, j)).To(BeNumerically("~", Bp.At(i, j), 1e-12))
				}
			}
		}
	})

	It("shares the Unicycle derivative", func() {
		analytic := models.NewAnalyticUnicycle(dt)
		plain := models.NewUnicycle(dt)
		x := dynamo.State{1, 2, 3, 0.5}
		u := dynamo.Control{0.2, -0.4}

		da, err := analytic.Derive(x, u)
		Expect(err).NotTo(HaveOccurred())
		dp, err := plain.Derive(x, u)
		Expect(err).NotTo(HaveOccurred())
		Expect(da).To(Equal(dp))
	})
})

var _ = Describe("Bike", func() {
	It("turns its heading at tan(steering angle)", func() {
		m := models.NewBike(dt)
		phi := 0.3
		dx, err := m.Derive(dynamo.State{0, 0, 2, 0, phi}, dynamo.Control{0.5, 0.1})
		Expect(err).NotTo(HaveOccurred())
		Expect(dx).To(HaveLen(5))
		Expect(dx[3]).To(BeNumerically("~", math.Tan(phi), 1e-12))
		Expect(dx[4]).To(Equal(0.1))
	})

	It("differentiates consistently with forward differences", func() {
		m := models.NewBike(dt)
		x := dynamo.State{1, 1, 1.8, 0.6, 0.2}
		u := dynamo.Control{0.1, 0.05}

		Ad, Bd, err := dynamo.LinearizeContinuous(m, x, u)
		Expect(err).NotTo(HaveOccurred())
		Af, Bf, err := dynamo.LinearizeForwardDifference(m, x, u)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				Expect(Ad.At(i, j)).To(BeNumerically("~", Af.At(i, j), 1e-4))
			}
			for j := 0; j < 2; j++ {
				Expect(Bd.At(i, j)).To(BeNumerically("~", Bf.At(i, j), 1e-4))
			}
		}
	})
})

var _ = Describe("identity", func() {
	It("assigns increasing ids across model kinds", func() {
		a := models.NewDoubleIntegrator(dt)
		b := models.NewCar(dt)
		c := models.NewBike(dt)
		Expect(a.ID()).To(Equal(0))
		Expect(b.ID()).To(Equal(1))
		Expect(c.ID()).To(Equal(2))
	})

	It("honors explicit ids", func() {
		m := models.NewUnicycle(dt, 42)
		Expect(m.ID()).To(Equal(42))
		Expect(m.String()).To(Equal("Unicycle(n_x: 4, n_u: 2, id: 42)"))
	})
})
