package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// MultiRecorder accumulates per-episode metrics for several players plus the
// game-level metrics shared by all of them.
type MultiRecorder struct {
	recorders []*Recorder
	gameNames []string
	gameRows  [][]float64
}

func NewMultiRecorder(players int, gameMetrics []string) *MultiRecorder {
	recorders := make([]*Recorder, players)
	for i := range recorders {
		recorders[i] = NewRecorder(nil)
	}
	return &MultiRecorder{recorders: recorders, gameNames: gameMetrics}
}

// Add appends one episode: one row per player plus the shared game metrics.
func (m *MultiRecorder) Add(rows [][]float64, gameMetrics []float64) error {
	if len(rows) != len(m.recorders) {
		return fmt.Errorf("metrics: %d player rows, want %d", len(rows), len(m.recorders))
	}
	if len(gameMetrics) != len(m.gameNames) {
		return fmt.Errorf("metrics: %d game values, want %d (%v)", len(gameMetrics), len(m.gameNames), m.gameNames)
	}
	for i, row := range rows {
		if err := m.recorders[i].Add(row); err != nil {
			return err
		}
	}
	m.gameRows = append(m.gameRows, gameMetrics)
	return nil
}

// Player returns the recorder of one player.
func (m *MultiRecorder) Player(i int) *Recorder { return m.recorders[i] }

func (m *MultiRecorder) Episodes() int { return len(m.gameRows) }

// Names returns the flattened column set: per-player columns prefixed with
// the player index, then the game metric names.
func (m *MultiRecorder) Names() []string {
	var names []string
	for i, r := range m.recorders {
		for _, n := range r.Names() {
			names = append(names, fmt.Sprintf("p%d_%s", i, n))
		}
	}
	return append(names, m.gameNames...)
}

func (m *MultiRecorder) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{"episode"}, m.Names()...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for ep := range m.gameRows {
		record := []string{strconv.Itoa(ep + 1)}
		for _, r := range m.recorders {
			for _, v := range r.Rows()[ep] {
				record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		for _, v := range m.gameRows[ep] {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
