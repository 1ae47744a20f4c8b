package sqltrace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"select 1", "select 1"},
		{"  select   1  ", " select 1 "},
		{"INSERT INTO Feedback\n\t(content, sentiment)\r\nVALUES ($1,$2)", "INSERT INTO Feedback (content, sentiment) VALUES ($1,$2)"},
		{"", ""},
	}
	for i, c := range cases {
		if got := compact(c.in); got != c.want {
			t.Fatalf("case %d: compact(%q) = %q, want %q", i, c.in, got, c.want)
		}
	}
}

type logLine struct {
	Level     string  `json:"level"`
	ElapsedMS float64 `json:"elapsed_ms"`
	Slow      bool    `json:"slow"`
	SQL       string  `json:"sql"`
	Args      []any   `json:"args"`
	Error     string  `json:"error"`
	Message   string  `json:"message"`
	Component string  `json:"component"`
	Driver    string  `json:"driver"`
}

func TestZerolog_InfoAndWarn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := Zerolog(zerolog.New(&buf), "sqlite")

	ev := Event{
		SQL:       "SELECT  id \n FROM  Feedback",
		Args:      []any{1, "two"},
		ElapsedUS: 12345,
		Err:       errors.New("boom"),
	}
	tr.OnQuery(context.Background(), ev)

	var line logLine
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("unmarshal: %v raw=%s", err, buf.String())
	}
	if line.Level != "info" || line.Slow || line.Message != "sql query" {
		t.Fatalf("unexpected line %+v", line)
	}
	if math.Abs(line.ElapsedMS-12.345) > 0.0005 {
		t.Fatalf("elapsed_ms = %v", line.ElapsedMS)
	}
	if line.SQL != "SELECT id FROM Feedback" || line.Error != "boom" || len(line.Args) != 2 {
		t.Fatalf("unexpected fields %+v", line)
	}
	if line.Component != "sql" || line.Driver != "sqlite" {
		t.Fatalf("component/driver = %q/%q", line.Component, line.Driver)
	}

	buf.Reset()
	ev.Slow = true
	tr.OnQuery(context.Background(), ev)
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("unmarshal warn: %v", err)
	}
	if line.Level != "warn" || !line.Slow {
		t.Fatalf("expected warn slow line, got %+v", line)
	}
}

type recorder struct{ got []Event }

func (r *recorder) OnQuery(_ context.Context, ev Event) { r.got = append(r.got, ev) }

func TestEmit(t *testing.T) {
	t.Parallel()

	Emit(context.Background(), nil, "pg", 0, "SELECT 1", nil, time.Now(), nil)

	rec := &recorder{}
	Emit(context.Background(), rec, "pg", 0, "SELECT 1", []any{1}, time.Now(), nil)
	Emit(context.Background(), rec, "pg", -1, "SELECT 2", nil, time.Now().Add(-time.Second), nil)
	Emit(context.Background(), rec, "pg", 10_000, "SELECT 3", nil, time.Now(), nil)

	if len(rec.got) != 3 {
		t.Fatalf("events = %d", len(rec.got))
	}
	if !rec.got[0].Slow {
		t.Fatalf("slowMs=0 marks every statement slow")
	}
	if rec.got[1].Slow {
		t.Fatalf("negative slowMs disables slow marking")
	}
	if rec.got[2].Slow {
		t.Fatalf("fast statement marked slow")
	}
	if rec.got[0].Driver != "pg" || rec.got[0].SQL != "SELECT 1" {
		t.Fatalf("event fields %+v", rec.got[0])
	}
}
