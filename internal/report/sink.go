package report

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogSink writes each summary to the process logger.
type LogSink struct{}

func (LogSink) Name() string { return "log" }

func (LogSink) Publish(_ context.Context, s *Summary) error {
	log.Info().
		Str("report_id", s.ID).
		Int64("microgrid_id", s.MicrogridID).
		Int("records", s.Records).
		Float64("ratio", s.Ratio).
		Float64("average_delta", s.AverageDelta).
		Float64("projected_annual", s.ProjectedAnnual).
		Msg("microgrid summary")
	return nil
}
