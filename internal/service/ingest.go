package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
)

// FromMQTT decodes a monthly record published on topic and creates it with
// its derived estimate.
func (s *RecordService) FromMQTT(ctx context.Context, topic string, payload []byte) (*domain.MonthlyRecord, error) {
	var r domain.MonthlyRecord
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, domain.IllegalArgument("undecodable monthly record on %s: %v", topic, err)
	}
	r.ID = 0
	saved, err := s.Create(ctx, r)
	if err != nil {
		return nil, err
	}
	log.Info().Str("topic", topic).Int64("record_id", saved.ID).Int64("microgrid_id", saved.MicrogridID).
		Stringer("period", saved.Period()).Msg("monthly record ingested")
	return saved, nil
}
