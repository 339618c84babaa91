package export

// Summary is the aggregate result of a batch run.
type Summary struct {
	Exported int `json:"exported"`
	Skipped  int `json:"skipped"`

	// Errors holds per-item messages in encounter order, each prefixed with
	// the item name, plus any terminal or informational message.
	Errors []string `json:"errors"`

	// Cancelled is set when the run stopped before its last item.
	Cancelled bool `json:"cancelled"`
}

func newSummary() *Summary {
	return &Summary{Errors: []string{}}
}

type outcome int

const (
	outcomeExported outcome = iota
	outcomeSkipped
	outcomeFailed
)

// itemResult is the outcome of one batch item.
type itemResult struct {
	outcome outcome
	message string
}

func exported() itemResult { return itemResult{outcome: outcomeExported} }

func skipped() itemResult { return itemResult{outcome: outcomeSkipped} }

func failed(message string) itemResult {
	return itemResult{outcome: outcomeFailed, message: message}
}

func (s *Summary) record(r itemResult) {
	switch r.outcome {
	case outcomeExported:
		s.Exported++
	case outcomeSkipped:
		s.Skipped++
	case outcomeFailed:
		s.Errors = append(s.Errors, r.message)
	}
}

func (s *Summary) cancel() {
	s.Cancelled = true
	s.Errors = append(s.Errors, msgCancelled)
}
