package observers

import "github.com/san-kum/lipm/internal/dynamo"

// StateLogger records (t, p, v, u) for every step, using the pre-step state.
type StateLogger struct {
	t, p, v, u []float64
}

func NewStateLogger() *StateLogger {
	return &StateLogger{}
}

func (l *StateLogger) Update(r dynamo.Record) error {
	l.t = append(l.t, r.T)
	l.p = append(l.p, r.X.P())
	l.v = append(l.v, r.X.V())
	l.u = append(l.u, r.U)
	return nil
}

func (l *StateLogger) Len() int { return len(l.t) }

// Arrays returns copies of the logged series in call order.
func (l *StateLogger) Arrays() (t, p, v, u []float64) {
	return clone(l.t), clone(l.p), clone(l.v), clone(l.u)
}

// Clear drops the history.
func (l *StateLogger) Clear() {
	l.t, l.p, l.v, l.u = l.t[:0], l.p[:0], l.v[:0], l.u[:0]
}

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
