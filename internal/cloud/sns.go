package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, opts ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSink alerts when a microgrid generates less than threshold times what it
// consumes. Other summaries are dropped.
type SNSSink struct {
	api       snsAPI
	topicArn  string
	threshold float64
}

func NewSNSSink(cfg aws.Config, topicArn string, threshold float64) *SNSSink {
	return &SNSSink{api: sns.NewFromConfig(cfg), topicArn: topicArn, threshold: threshold}
}

func (c *SNSSink) Name() string { return "sns" }

func (c *SNSSink) Publish(ctx context.Context, s *report.Summary) error {
	if !s.Deficit(c.threshold) {
		return nil
	}
	subject := fmt.Sprintf("Microgrid Alert: generation deficit at %s", s.MicrogridName)
	message := fmt.Sprintf(
		"Generation Deficit Alert\n\n"+
			"Microgrid: %s (#%d)\n"+
			"Periods: %s to %s\n"+
			"Generated: %.2f kWh\n"+
			"Consumed: %.2f kWh\n"+
			"Generation/consumption: %.2f (threshold %.2f)\n"+
			"Report: %s",
		s.MicrogridName, s.MicrogridID,
		s.FirstPeriod, s.LastPeriod,
		s.TotalGenerated, s.TotalConsumed,
		s.Ratio, c.threshold,
		s.ID,
	)

	result, err := c.api.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	log.Info().Str("message_id", aws.ToString(result.MessageId)).Int64("microgrid_id", s.MicrogridID).Msg("deficit alert sent")
	return nil
}
