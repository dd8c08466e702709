// Package export writes run histories to an io.Writer as CSV, JSON or SVG.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// History holds the four parallel series recorded by a state logger.
type History struct {
	T []float64 `json:"t"`
	P []float64 `json:"p"`
	V []float64 `json:"v"`
	U []float64 `json:"u"`
}

func (h History) Len() int { return len(h.T) }

func (h History) validate() error {
	n := len(h.T)
	if len(h.P) != n || len(h.V) != n || len(h.U) != n {
		return fmt.Errorf("history series lengths differ: t=%d p=%d v=%d u=%d", n, len(h.P), len(h.V), len(h.U))
	}
	return nil
}

// Run is the JSON document for one experiment.
type Run struct {
	RunID    string             `json:"run_id"`
	Dynamics string             `json:"dynamics"`
	Policy   string             `json:"policy"`
	Dt       float64            `json:"dt"`
	Seed     int64              `json:"seed"`
	Steps    int                `json:"steps"`
	Metrics  map[string]float64 `json:"metrics"`
	History  History            `json:"history"`
}

func WriteJSON(w io.Writer, run Run) error {
	if err := run.History.validate(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

var csvHeader = []string{"t", "p", "v", "u"}

// WriteCSV writes a header row and one row per logged step.
func WriteCSV(w io.Writer, h History) error {
	if err := h.validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	row := make([]string, 4)
	for i := range h.T {
		row[0] = strconv.FormatFloat(h.T[i], 'g', -1, 64)
		row[1] = strconv.FormatFloat(h.P[i], 'g', -1, 64)
		row[2] = strconv.FormatFloat(h.V[i], 'g', -1, 64)
		row[3] = strconv.FormatFloat(h.U[i], 'g', -1, 64)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the output of WriteCSV.
func ReadCSV(r io.Reader) (History, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return History{}, err
	}
	if len(records) == 0 {
		return History{}, fmt.Errorf("missing header")
	}

	var h History
	cols := []*[]float64{&h.T, &h.P, &h.V, &h.U}
	for line, rec := range records[1:] {
		for j, field := range rec {
			f, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return History{}, fmt.Errorf("line %d column %s: %w", line+2, csvHeader[j], err)
			}
			*cols[j] = append(*cols[j], f)
		}
	}
	return h, nil
}
