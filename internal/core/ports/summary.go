package ports

import "context"

// Summarizer is the external note summarization collaborator.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// SummaryResult is the outcome of one summarization request. Text is always
// displayable: on failure it holds a fallback message and Err the cause.
type SummaryResult struct {
	Text string
	Err  error
}

// OK reports whether the summary came from the summarizer.
func (r SummaryResult) OK() bool { return r.Err == nil }

// SummaryService turns notes into a summary without ever failing.
type SummaryService interface {
	Summarize(ctx context.Context, notes string) SummaryResult
}
