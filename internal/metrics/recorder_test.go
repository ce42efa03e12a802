package metrics

import (
	"reflect"
	"strings"
	"testing"
)

func TestRecorderColumns(t *testing.T) {
	r := NewRecorder([]string{"hits"})
	want := []string{MetricTime, MetricActions, MetricReward, "hits"}
	if !reflect.DeepEqual(r.Names(), want) {
		t.Fatalf("names %v, want %v", r.Names(), want)
	}

	if err := r.Add([]float64{1.5, 10, 3, 7}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Add([]float64{2.5, 20, 6, 8}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Add([]float64{1, 2}); err == nil {
		t.Fatal("short row accepted")
	}

	rewards, err := r.Metric(MetricReward)
	if err != nil {
		t.Fatalf("metric: %v", err)
	}
	if !reflect.DeepEqual(rewards, []float64{3, 6}) {
		t.Fatalf("rewards %v", rewards)
	}
	if !reflect.DeepEqual(r.Rewards(), rewards) {
		t.Fatal("Rewards() disagrees with Metric()")
	}
	if _, err := r.Metric("nope"); err == nil {
		t.Fatal("unknown metric accepted")
	}
}

func TestRecorderWriteCSV(t *testing.T) {
	r := NewRecorder(nil)
	if err := r.Add([]float64{0.5, 3, 1.25}); err != nil {
		t.Fatalf("add: %v", err)
	}

	var sb strings.Builder
	if err := r.WriteCSV(&sb); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines: %v", lines)
	}
	if lines[0] != "episode,time,actions,reward" {
		t.Fatalf("header %q", lines[0])
	}
	if lines[1] != "1,0.5,3,1.25" {
		t.Fatalf("row %q", lines[1])
	}
}

func TestMultiRecorder(t *testing.T) {
	m := NewMultiRecorder(2, []string{"hits"})
	rows := [][]float64{
		{1, 5, 2},
		{1.5, 6, 4},
	}
	if err := m.Add(rows, []float64{9}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := m.Add(rows[:1], []float64{9}); err == nil {
		t.Fatal("wrong player count accepted")
	}
	if err := m.Add(rows, nil); err == nil {
		t.Fatal("missing game metrics accepted")
	}

	if m.Episodes() != 1 {
		t.Fatalf("episodes %d, want 1", m.Episodes())
	}
	if got := m.Player(1).Rewards(); !reflect.DeepEqual(got, []float64{4}) {
		t.Fatalf("player 1 rewards %v", got)
	}

	var sb strings.Builder
	if err := m.WriteCSV(&sb); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if lines[0] != "episode,p0_time,p0_actions,p0_reward,p1_time,p1_actions,p1_reward,hits" {
		t.Fatalf("header %q", lines[0])
	}
	if lines[1] != "1,1,5,2,1.5,6,4,9" {
		t.Fatalf("row %q", lines[1])
	}
}
