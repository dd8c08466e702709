package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/lipm/internal/control"
	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/models"
)

const dt = 0.01

var omega = math.Sqrt(9.81 / 0.6)

func exact(t *testing.T) dynamo.Dynamics {
	t.Helper()
	dyn, err := models.NewExact(omega, dt)
	if err != nil {
		t.Fatal(err)
	}
	return dyn
}

func euler(t *testing.T) dynamo.Dynamics {
	t.Helper()
	dyn, err := models.NewEuler(omega, dt)
	if err != nil {
		t.Fatal(err)
	}
	return dyn
}

func TestDivergenceRateExactIsOmega(t *testing.T) {
	rate := DivergenceRate(exact(t), dynamo.State{}, dt, 2000, 1e-6)
	if math.Abs(rate-omega) > 0.02*omega {
		t.Errorf("expected rate near %.4f, got %.4f", omega, rate)
	}
}

func TestDivergenceRateEulerUnderestimates(t *testing.T) {
	rate := DivergenceRate(euler(t), dynamo.State{}, dt, 2000, 1e-6)
	want := math.Log(1+omega*dt) / dt
	if math.Abs(rate-want) > 0.02*want {
		t.Errorf("expected rate near %.4f, got %.4f", want, rate)
	}
	if rate >= omega {
		t.Errorf("Euler rate %.4f should be below omega %.4f", rate, omega)
	}
}

func TestDivergenceRateDegenerate(t *testing.T) {
	if got := DivergenceRate(exact(t), dynamo.State{}, dt, 0, 1e-6); got != 0 {
		t.Errorf("expected 0 for no steps, got %v", got)
	}
	if got := DivergenceRate(exact(t), dynamo.State{}, dt, 10, 0); got != 0 {
		t.Errorf("expected 0 for zero perturbation, got %v", got)
	}
}

func TestCompareGapShrinksWithStep(t *testing.T) {
	policy, err := control.NewCapturePoint(omega, -1, 1)
	if err != nil {
		t.Fatal(err)
	}
	x0 := dynamo.State{0.1, 0.3}

	gapFor := func(step float64) float64 {
		e, _ := models.NewEuler(omega, step)
		x, _ := models.NewExact(omega, step)
		dp, _ := MaxGap(Compare(e, x, policy, x0, step, int(0.5/step)))
		return dp
	}

	coarse, fine := gapFor(0.02), gapFor(0.01)
	if !(fine < coarse) {
		t.Errorf("gap should shrink with dt: coarse=%g fine=%g", coarse, fine)
	}
}

func TestCompareIdenticalModels(t *testing.T) {
	policy, _ := control.NewCapturePoint(omega, -1, 1)
	gaps := Compare(exact(t), exact(t), policy, dynamo.State{0.1, 0.2}, dt, 50)
	if len(gaps) != 50 {
		t.Fatalf("expected 50 gaps, got %d", len(gaps))
	}
	if dp, dv := MaxGap(gaps); dp != 0 || dv != 0 {
		t.Errorf("identical models must not diverge: dp=%g dv=%g", dp, dv)
	}
	if math.Abs(gaps[49].T-0.5) > 1e-9 {
		t.Errorf("expected last gap at t=0.5, got %v", gaps[49].T)
	}
}

func TestGeneratePhasePortrait(t *testing.T) {
	policy, _ := control.NewCapturePoint(omega, -1, 1)
	portrait := GeneratePhasePortrait(exact(t), policy, dynamo.State{0, 0.5}, dt, 300)

	if len(portrait.Points) != 301 {
		t.Fatalf("expected 301 points, got %d", len(portrait.Points))
	}
	last := portrait.Points[len(portrait.Points)-1]
	if math.Abs(last.Y) > 1e-3 {
		t.Errorf("capture point control should stop the mass, v=%g", last.Y)
	}
}

func TestFromSeries(t *testing.T) {
	portrait := FromSeries([]float64{1, 2, 3}, []float64{4, 5})
	if len(portrait.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(portrait.Points))
	}
	if portrait.Points[1] != (Point{X: 2, Y: 5}) {
		t.Errorf("unexpected point %v", portrait.Points[1])
	}
}

func TestVelocityReversals(t *testing.T) {
	portrait := FromSeries([]float64{0, 1, 2, 3, 4}, []float64{1, 0.5, -0.5, -0.2, 0.3})
	got := VelocityReversals(portrait)
	if len(got) != 2 {
		t.Fatalf("expected 2 reversals, got %d", len(got))
	}
	if got[0].X != 2 || got[1].X != 4 {
		t.Errorf("unexpected reversals %v", got)
	}
	if VelocityReversals(nil) != nil {
		t.Error("expected nil for nil portrait")
	}
}

func TestPhasePortraitToASCII(t *testing.T) {
	portrait := FromSeries([]float64{-1, 0, 1}, []float64{-1, 0, 1})
	out := PhasePortraitToASCII(portrait, 20, 10)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 20 {
			t.Fatalf("expected width 20, got %d", n)
		}
	}
	if !strings.Contains(out, "o") || !strings.Contains(out, "•") {
		t.Error("expected start marker and trajectory points")
	}
	if PhasePortraitToASCII(nil, 20, 10) != "" {
		t.Error("expected empty output for nil portrait")
	}
}

func TestDominantFrequency(t *testing.T) {
	const n = 500
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 0.3 + math.Sin(2*math.Pi*2*float64(i)*dt)
	}

	if got := DominantFrequency(signal, dt); math.Abs(got-2) > 1e-9 {
		t.Errorf("expected 2 Hz, got %v", got)
	}
}

func TestDominantFrequencyConstant(t *testing.T) {
	signal := []float64{0.2, 0.2, 0.2, 0.2}
	if got := DominantFrequency(signal, dt); got != 0 {
		t.Errorf("expected 0 for a constant signal, got %v", got)
	}
	if got := DominantFrequency(nil, dt); got != 0 {
		t.Errorf("expected 0 for empty signal, got %v", got)
	}
}
