package pipeline

// Status is the outcome of one unit of batch work.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Summary counts results by status.
type Summary struct {
	Done    int
	Skipped int
	Failed  int
}

func (s *Summary) add(status Status) {
	switch status {
	case StatusDone:
		s.Done++
	case StatusSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
}
