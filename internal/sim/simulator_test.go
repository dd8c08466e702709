package sim_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lipm/internal/control"
	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/models"
	"github.com/san-kum/lipm/internal/observers"
	"github.com/san-kum/lipm/internal/sim"
)

type constPolicy float64

func (c constPolicy) Compute(x dynamo.State, t float64) float64 { return float64(c) }

const dt = 0.01

func newExact() dynamo.Dynamics {
	w, err := dynamo.NaturalFrequency(9.81, 0.6)
	Expect(err).NotTo(HaveOccurred())
	dyn, err := models.NewExact(w, dt)
	Expect(err).NotTo(HaveOccurred())
	return dyn
}

func newLeastSquares(dyn dynamo.Dynamics) dynamo.Policy {
	a, b := dyn.AB()
	pol, err := control.NewLeastSquares(a, b, 0)
	Expect(err).NotTo(HaveOccurred())
	return pol
}

func newScenario(seed int64, pushProb float64) *sim.Simulator {
	dyn := newExact()
	s, err := sim.NewScenario(dyn, newLeastSquares(dyn), dt, sim.Scenario{
		UMin: -0.3, UMax: 0.3, PushProb: pushProb, Seed: seed,
	})
	Expect(err).NotTo(HaveOccurred())
	s.X = dynamo.State{0.1, 0}
	return s
}

func trajectory(s *sim.Simulator, n int) []dynamo.State {
	out := make([]dynamo.State, 0, n)
	s.Attach(dynamo.ObserverFunc(func(r dynamo.Record) error {
		out = append(out, r.XNext)
		return nil
	}))
	Expect(s.Run(n)).To(Succeed())
	return out
}

var _ = Describe("Simulator", func() {
	Describe("construction", func() {
		It("rejects non-positive dt", func() {
			dyn := newExact()
			for _, bad := range []float64{0, -0.01, math.NaN()} {
				_, err := sim.New(dyn, constPolicy(0), bad)
				Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue(), "dt=%v", bad)
			}
		})

		It("rejects missing collaborators", func() {
			_, err := sim.New(nil, constPolicy(0), dt)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
			_, err = sim.New(newExact(), nil, dt)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("rejects an invalid scenario", func() {
			dyn := newExact()
			_, err := sim.NewScenario(dyn, constPolicy(0), dt, sim.Scenario{UMin: 1, UMax: -1})
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
			_, err = sim.NewScenario(dyn, constPolicy(0), dt, sim.Scenario{UMin: -1, UMax: 1, PushProb: 1.5})
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
			_, err = sim.NewScenario(dyn, constPolicy(0), dt, sim.Scenario{UMin: -1, UMax: 1, Kick: -0.1})
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("exposes its configuration", func() {
			dyn := newExact()
			pol := constPolicy(0.1)
			s, err := sim.NewScenario(dyn, pol, dt, sim.Scenario{UMin: -0.2, UMax: 0.25})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Dt()).To(Equal(dt))
			Expect(s.UMin()).To(Equal(-0.2))
			Expect(s.UMax()).To(Equal(0.25))
			Expect(s.Policy()).To(Equal(dynamo.Policy(pol)))
			Expect(s.Dynamics()).To(BeIdenticalTo(dyn))
		})

		It("is unbounded without a scenario", func() {
			s, err := sim.New(newExact(), constPolicy(0), dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsInf(s.UMin(), -1)).To(BeTrue())
			Expect(math.IsInf(s.UMax(), 1)).To(BeTrue())
		})
	})

	Describe("stepping", func() {
		It("delivers pre-step clock and state with the committed next state", func() {
			dyn := newExact()
			s, err := sim.New(dyn, constPolicy(0.05), dt)
			Expect(err).NotTo(HaveOccurred())
			s.X = dynamo.State{0.1, 0.2}
			s.T = 1.0

			var got dynamo.Record
			s.Attach(dynamo.ObserverFunc(func(r dynamo.Record) error {
				got = r
				return nil
			}))
			Expect(s.Step()).To(Succeed())

			Expect(got.T).To(Equal(1.0))
			Expect(got.X).To(Equal(dynamo.State{0.1, 0.2}))
			Expect(got.U).To(Equal(0.05))
			Expect(got.XNext).To(Equal(dyn.Propagate(dynamo.State{0.1, 0.2}, 0.05, dt)))
			Expect(s.X).To(Equal(got.XNext))
			Expect(s.T).To(BeNumerically("~", 1.0+dt, 1e-12))
			Expect(s.Steps()).To(Equal(1))
		})

		It("clamps control before the dynamics", func() {
			s, err := sim.NewScenario(newExact(), constPolicy(10), dt, sim.Scenario{UMin: -0.3, UMax: 0.3})
			Expect(err).NotTo(HaveOccurred())

			var us []float64
			s.Attach(dynamo.ObserverFunc(func(r dynamo.Record) error {
				us = append(us, r.U)
				return nil
			}))
			Expect(s.Run(3)).To(Succeed())
			Expect(us).To(Equal([]float64{0.3, 0.3, 0.3}))
			Expect(s.Control()).To(Equal(0.3))
		})

		It("applies custom strategies", func() {
			s, err := sim.New(newExact(), constPolicy(1), dt,
				sim.WithConstraint(func(u float64) float64 { return u / 2 }),
				sim.WithDisturbance(func(x dynamo.State) dynamo.State { return dynamo.State{x[0], 7} }),
			)
			Expect(err).NotTo(HaveOccurred())

			var rec dynamo.Record
			s.Attach(dynamo.ObserverFunc(func(r dynamo.Record) error {
				rec = r
				return nil
			}))
			Expect(s.Step()).To(Succeed())
			Expect(rec.U).To(Equal(0.5))
			Expect(rec.XNext.V()).To(Equal(7.0))
		})

		It("notifies observers in attachment order without dedup", func() {
			s, err := sim.New(newExact(), constPolicy(0), dt)
			Expect(err).NotTo(HaveOccurred())

			var order []string
			mk := func(name string) dynamo.Observer {
				return dynamo.ObserverFunc(func(dynamo.Record) error {
					order = append(order, name)
					return nil
				})
			}
			a := mk("a")
			s.Attach(a)
			s.Attach(mk("b"))
			s.Attach(a)
			Expect(s.Run(2)).To(Succeed())
			Expect(order).To(Equal([]string{"a", "b", "a", "a", "b", "a"}))
		})

		It("aborts on the first observer error without committing", func() {
			s, err := sim.New(newExact(), constPolicy(0), dt)
			Expect(err).NotTo(HaveOccurred())
			s.X = dynamo.State{0.1, 0}

			boom := errors.New("boom")
			calls, after := 0, 0
			s.Attach(dynamo.ObserverFunc(func(dynamo.Record) error {
				calls++
				if calls == 3 {
					return boom
				}
				return nil
			}))
			s.Attach(dynamo.ObserverFunc(func(dynamo.Record) error {
				after++
				return nil
			}))

			err = s.Run(10)
			Expect(errors.Is(err, boom)).To(BeTrue())

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(2))

			Expect(s.Steps()).To(Equal(2))
			Expect(after).To(Equal(2))
			Expect(s.T).To(BeNumerically("~", 2*dt, 1e-12))
		})

		It("rejects a non-finite result", func() {
			s, err := sim.New(newExact(), constPolicy(math.Inf(1)), dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Step()).To(MatchError(dynamo.ErrInvalidState))
			Expect(s.Steps()).To(BeZero())
		})

		It("continues from externally overwritten state and clock", func() {
			s := newScenario(1, 0)
			Expect(s.Run(5)).To(Succeed())

			s.Reset(dynamo.State{0, 0})
			Expect(s.T).To(BeZero())

			var rec dynamo.Record
			s.Attach(dynamo.ObserverFunc(func(r dynamo.Record) error {
				rec = r
				return nil
			}))
			Expect(s.Step()).To(Succeed())
			Expect(rec.T).To(BeZero())
			Expect(rec.X).To(Equal(dynamo.State{0, 0}))
			Expect(s.Steps()).To(Equal(6))
		})
	})

	Describe("logging", func() {
		It("records one entry per step with the pre-step clock", func() {
			s := newScenario(42, 0)
			logger := observers.NewStateLogger()
			s.Attach(logger)

			Expect(s.Run(50)).To(Succeed())

			ts, ps, vs, us := logger.Arrays()
			Expect(ts).To(HaveLen(50))
			Expect(ps).To(HaveLen(50))
			Expect(vs).To(HaveLen(50))
			Expect(us).To(HaveLen(50))
			for k, t := range ts {
				Expect(t).To(BeNumerically("~", float64(k)*dt, 1e-9))
			}
			Expect(ps[0]).To(Equal(0.1))
		})
	})

	Describe("disturbances", func() {
		It("reproduces trajectories for the same seed", func() {
			a := newScenario(7, 0.3)
			b := newScenario(7, 0.3)

			ta := trajectory(a, 100)
			Expect(b.Run(40)).To(Succeed())
			Expect(b.Run(60)).To(Succeed())

			Expect(b.X).To(Equal(ta[len(ta)-1]))
			Expect(a.Pushes()).To(Equal(b.Pushes()))
			Expect(a.Pushes()).To(BeNumerically(">", 0))
		})

		It("diverges for different seeds", func() {
			ta := trajectory(newScenario(1, 0.5), 200)
			tb := trajectory(newScenario(2, 0.5), 200)
			Expect(ta).NotTo(Equal(tb))
		})

		It("never pushes with zero probability", func() {
			dyn := newExact()
			pol := newLeastSquares(dyn)

			pushed := newScenario(3, 0)
			plain, err := sim.New(dyn, pol, dt, sim.WithBounds(-0.3, 0.3))
			Expect(err).NotTo(HaveOccurred())
			plain.X = dynamo.State{0.1, 0}

			Expect(trajectory(pushed, 300)).To(Equal(trajectory(plain, 300)))
			Expect(pushed.Pushes()).To(BeZero())
		})

		It("pushes every step with probability one", func() {
			dyn := newExact()
			s := newScenario(5, 1)

			var recs []dynamo.Record
			s.Attach(dynamo.ObserverFunc(func(r dynamo.Record) error {
				recs = append(recs, r)
				return nil
			}))
			Expect(s.Run(25)).To(Succeed())
			Expect(s.Pushes()).To(Equal(25))

			for _, r := range recs {
				undisturbed := dyn.Propagate(r.X, r.U, dt)
				Expect(r.XNext.P()).To(Equal(undisturbed.P()))
				Expect(math.Abs(r.XNext.V() - undisturbed.V())).To(BeNumerically("<=", sim.DefaultKick))
			}
		})

		It("bounds pushes by a configured kick", func() {
			dyn := newExact()
			s, err := sim.NewScenario(dyn, newLeastSquares(dyn), dt, sim.Scenario{
				UMin: -0.3, UMax: 0.3, PushProb: 1, Seed: 5, Kick: 0.01,
			})
			Expect(err).NotTo(HaveOccurred())

			var kicks []float64
			s.Attach(dynamo.ObserverFunc(func(r dynamo.Record) error {
				kicks = append(kicks, r.XNext.V()-dyn.Propagate(r.X, r.U, dt).V())
				return nil
			}))
			Expect(s.Run(50)).To(Succeed())
			Expect(s.Pushes()).To(Equal(50))
			for _, k := range kicks {
				Expect(math.Abs(k)).To(BeNumerically("<=", 0.01+1e-12))
			}
		})
	})
})
