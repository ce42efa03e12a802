package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Built-in per-episode metric names. Game-reported metrics follow these.
const (
	MetricTime    = "time"
	MetricActions = "actions"
	MetricReward  = "reward"
)

// Source is the read side of an episode recorder.
type Source interface {
	Names() []string
	WriteCSV(w io.Writer) error
}

// Recorder accumulates one row of metrics per episode for a single player.
type Recorder struct {
	names []string
	rows  [][]float64
}

// NewRecorder builds a recorder with the built-in columns followed by the
// game-reported metric names.
func NewRecorder(gameMetrics []string) *Recorder {
	names := []string{MetricTime, MetricActions, MetricReward}
	names = append(names, gameMetrics...)
	return &Recorder{names: names}
}

func (r *Recorder) Names() []string { return r.names }

func (r *Recorder) Episodes() int { return len(r.rows) }

// Add appends one episode's row.
func (r *Recorder) Add(row []float64) error {
	if len(row) != len(r.names) {
		return fmt.Errorf("metrics: row has %d values, want %d (%v)", len(row), len(r.names), r.names)
	}
	r.rows = append(r.rows, row)
	return nil
}

// Rows returns every recorded episode row in order.
func (r *Recorder) Rows() [][]float64 { return r.rows }

// Metric returns the column with the given name, one value per episode.
func (r *Recorder) Metric(name string) ([]float64, error) {
	for col, n := range r.names {
		if n != name {
			continue
		}
		out := make([]float64, len(r.rows))
		for i, row := range r.rows {
			out[i] = row[col]
		}
		return out, nil
	}
	return nil, fmt.Errorf("metrics: unknown metric %q", name)
}

func (r *Recorder) EpisodeTimes() []float64 {
	vals, _ := r.Metric(MetricTime)
	return vals
}

func (r *Recorder) Rewards() []float64 {
	vals, _ := r.Metric(MetricReward)
	return vals
}

func (r *Recorder) Actions() []float64 {
	vals, _ := r.Metric(MetricActions)
	return vals
}

// WriteCSV renders the table with a leading 1-based episode column.
func (r *Recorder) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{"episode"}, r.names...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, row := range r.rows {
		record := make([]string, 0, len(row)+1)
		record = append(record, strconv.Itoa(i+1))
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the table to a file.
func ExportCSV(src Source, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := src.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
