package domain

import "time"

// Situação de um arquivo processado pela varredura da caixa de entrada
const (
	SweepFileGenerated = "generated"
	SweepFileFailed    = "failed"
)

type SweepFile struct {
	Name       string   `json:"name"`
	Status     string   `json:"status"`
	Output     string   `json:"output,omitempty"`
	RunID      string   `json:"run_id,omitempty"`
	Rows       int      `json:"rows,omitempty"`
	Error      string   `json:"error,omitempty"`
	Duplicates []string `json:"duplicates,omitempty"`
}

// SweepReport resume uma varredura da caixa de entrada
type SweepReport struct {
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt time.Time   `json:"completed_at"`
	Files       []SweepFile `json:"files"`
}

func (r *SweepReport) Failed() int {
	failed := 0
	for _, f := range r.Files {
		if f.Status == SweepFileFailed {
			failed++
		}
	}
	return failed
}
