package orchestrator

import "time"

// Stats are the counters of one run.
type Stats struct {
	CasesProcessed      int `json:"cases_processed"`
	CasesSkipped        int `json:"cases_skipped"`
	Candidates          int `json:"candidates"`
	ChunksEmitted       int `json:"chunks_emitted"`
	BackchannelsIgnored int `json:"backchannels_ignored"`
	LookupMisses        int `json:"lookup_misses"`
	MissingArgDates     int `json:"missing_argument_dates"`
}

func (s *Stats) add(o Stats) {
	s.CasesProcessed += o.CasesProcessed
	s.CasesSkipped += o.CasesSkipped
	s.Candidates += o.Candidates
	s.ChunksEmitted += o.ChunksEmitted
	s.BackchannelsIgnored += o.BackchannelsIgnored
	s.LookupMisses += o.LookupMisses
	s.MissingArgDates += o.MissingArgDates
}

// Manifest describes a finished run; it is written as run.json.
type Manifest struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	YearStart  int       `json:"year_start"`
	YearEnd    int       `json:"year_end"`
	ChunksDir  string    `json:"chunks_dir"`
	Stats      Stats     `json:"stats"`
}

// CaseOutcome is what processing one case produced.
type CaseOutcome struct {
	CaseID     string
	Boundaries []string
	Stats      Stats
	Advocates  int
}
