package main

import (
	"encoding/json"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/config"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/platform"
)

// syntheticRecords produces n consecutive months ending with the month before
// now. Generation follows a rough solar season.
func syntheticRecords(microgridID int64, n int, now time.Time, rng *rand.Rand) []domain.MonthlyRecord {
	p := domain.Period{Year: now.Year(), Month: int(now.Month())}
	start := p
	for i := 0; i < n; i++ {
		if start.Month == 1 {
			start = domain.Period{Year: start.Year - 1, Month: 12}
		} else {
			start = domain.Period{Year: start.Year, Month: start.Month - 1}
		}
	}

	out := make([]domain.MonthlyRecord, 0, n)
	for cur := start; len(out) < n; cur = cur.Next() {
		season := 1.0
		switch cur.Month {
		case 11, 12, 1, 2:
			season = 1.3
		case 5, 6, 7:
			season = 0.7
		}
		out = append(out, domain.MonthlyRecord{
			MicrogridID:    microgridID,
			Year:           cur.Year,
			Month:          cur.Month,
			WattsGenerated: 800*season + rng.Float64()*200,
			WattsConsumed:  900 + rng.Float64()*150,
		})
	}
	return out
}

// publish sends each record as JSON and returns how many went out. A record
// that cannot be encoded or sent is logged and skipped.
func publish(records []domain.MonthlyRecord, send func(payload []byte) error, pause time.Duration) int {
	sent := 0
	for _, r := range records {
		payload, err := json.Marshal(r)
		if err != nil {
			log.Error().Err(err).Stringer("period", r.Period()).Msg("encode failed")
			continue
		}
		if err := send(payload); err != nil {
			log.Error().Err(err).Stringer("period", r.Period()).Msg("publish failed")
			continue
		}
		sent++
		log.Info().Stringer("period", r.Period()).Float64("generated", r.WattsGenerated).Msg("published")
		time.Sleep(pause)
	}
	return sent
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	platform.SetupLogging(cfg.LogLevel, true)

	opts := mqtt.NewClientOptions().AddBroker(cfg.MQTTBroker).SetClientID(cfg.MQTTClientID + "-simulator")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	records := syntheticRecords(cfg.SimMicrogridID, cfg.SimMonths, time.Now(), rng)
	sent := publish(records, func(payload []byte) error {
		token := client.Publish(cfg.MQTTTopic, 1, false, payload)
		token.Wait()
		return token.Error()
	}, 500*time.Millisecond)
	log.Info().Int("sent", sent).Int("total", len(records)).Msg("simulation done")
}
