package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/serdebench/pkg/codec"
)

// Attempt is the measurement of one round trip
type Attempt struct {
	Index        int           `json:"index"`
	Elapsed      time.Duration `json:"elapsed_ns"`   // Deserialization wall-clock time
	Serialize    time.Duration `json:"serialize_ns"` // Serialization wall-clock time
	PayloadBytes int           `json:"payload_bytes"`
	Chunks       int           `json:"chunks"`
	Records      int           `json:"records"`
}

// Report collects the attempts of one run
type Report struct {
	RunID     ksuid.KSUID `json:"run_id"`
	Codec     codec.Kind  `json:"codec"`
	Dataset   string      `json:"dataset"`
	Records   int         `json:"records"`
	ChunkSize int         `json:"chunk_size"`
	StartedAt time.Time   `json:"started_at"`
	Attempts  []Attempt   `json:"attempts"`
}

// Summary aggregates deserialization times across attempts
type Summary struct {
	Min   time.Duration `json:"min_ns"`
	Max   time.Duration `json:"max_ns"`
	Mean  time.Duration `json:"mean_ns"`
	Total time.Duration `json:"total_ns"`
}

// Summary computes min, max, mean and total deserialization time
func (r *Report) Summary() Summary {
	var s Summary
	if len(r.Attempts) == 0 {
		return s
	}

	s.Min = r.Attempts[0].Elapsed
	for _, a := range r.Attempts {
		s.Total += a.Elapsed
		if a.Elapsed < s.Min {
			s.Min = a.Elapsed
		}
		if a.Elapsed > s.Max {
			s.Max = a.Elapsed
		}
	}
	s.Mean = s.Total / time.Duration(len(r.Attempts))
	return s
}

// WriteTable renders the report as aligned text
func (r *Report) WriteTable(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Run:\t%s\n", r.RunID)
	fmt.Fprintf(w, "Codec:\t%s\n", r.Codec)
	fmt.Fprintf(w, "Dataset:\t%s\n", r.Dataset)
	fmt.Fprintf(w, "Records:\t%d\n", r.Records)
	fmt.Fprintf(w, "Chunk size:\t%d\n", r.ChunkSize)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "ATTEMPT\tDESERIALIZE\tSERIALIZE\tPAYLOAD\tCHUNKS\tRECORDS")
	for _, a := range r.Attempts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n",
			a.Index, formatMillis(a.Elapsed), formatMillis(a.Serialize), a.PayloadBytes, a.Chunks, a.Records)
	}

	if len(r.Attempts) > 1 {
		s := r.Summary()
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Min:\t%s\n", formatMillis(s.Min))
		fmt.Fprintf(w, "Max:\t%s\n", formatMillis(s.Max))
		fmt.Fprintf(w, "Mean:\t%s\n", formatMillis(s.Mean))
	}

	return w.Flush()
}

// WriteJSON renders the report and its summary as indented JSON
func (r *Report) WriteJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*Report
		Summary Summary `json:"summary"`
	}{r, r.Summary()})
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d)/float64(time.Millisecond))
}
