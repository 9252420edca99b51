package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

// Fallback texts shown in place of a summary.
const (
	SummaryMissingConfig = "AI configuration missing. Please enable API key."
	SummaryFailed        = "Error generating summary."
	SummaryEmpty         = "No summary generated."
)

var (
	errEmptySummary = errors.New("summarizer returned no text")
	errEmptyNotes   = errors.New("no notes to summarize")
)

// SummaryService wraps the external summarizer so that callers always get
// displayable text back. It never retries.
type SummaryService struct {
	summarizer ports.Summarizer
	log        zerolog.Logger
}

// NewSummaryService accepts a nil summarizer, which behaves as unconfigured.
func NewSummaryService(summarizer ports.Summarizer, log zerolog.Logger) *SummaryService {
	return &SummaryService{summarizer: summarizer, log: log}
}

func (s *SummaryService) Summarize(ctx context.Context, notes string) ports.SummaryResult {
	if strings.TrimSpace(notes) == "" {
		return ports.SummaryResult{Text: SummaryEmpty, Err: errEmptyNotes}
	}
	if s.summarizer == nil {
		s.log.Warn().Msg("summarizer not configured")
		return ports.SummaryResult{Text: SummaryMissingConfig, Err: domain.ErrSummarizerNotConfigured}
	}

	text, err := s.summarizer.Summarize(ctx, notes)
	switch {
	case errors.Is(err, domain.ErrSummarizerNotConfigured):
		s.log.Warn().Msg("summarizer not configured")
		return ports.SummaryResult{Text: SummaryMissingConfig, Err: err}
	case err != nil:
		s.log.Error().Err(err).Msg("summarization failed")
		return ports.SummaryResult{Text: SummaryFailed, Err: err}
	case strings.TrimSpace(text) == "":
		return ports.SummaryResult{Text: SummaryEmpty, Err: errEmptySummary}
	}
	return ports.SummaryResult{Text: strings.TrimSpace(text)}
}

// AppendSummary adds a summary block below the existing notes, the way the
// patient form does before the user saves.
func AppendSummary(notes, summary string) string {
	return notes + "\n\n[AI Summary]: " + summary
}
