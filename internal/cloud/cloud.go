// Package cloud publishes microgrid summaries to AWS.
package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/config"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
)

func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return cfg, nil
}

// Sinks returns the log sink plus, when cloud services are enabled, one sink
// per configured AWS target. Targets with an empty name are skipped.
func Sinks(ctx context.Context, cfg *config.Config) ([]report.Sink, error) {
	sinks := []report.Sink{report.LogSink{}}
	if !cfg.UseCloudServices {
		return sinks, nil
	}
	awsCfg, err := LoadAWSConfig(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	if cfg.S3Bucket != "" {
		sinks = append(sinks, NewS3Sink(awsCfg, cfg.S3Bucket))
	}
	if cfg.DynamoDBTable != "" {
		sinks = append(sinks, NewDynamoDBSink(awsCfg, cfg.DynamoDBTable))
	}
	if cfg.SNSTopicArn != "" {
		sinks = append(sinks, NewSNSSink(awsCfg, cfg.SNSTopicArn, cfg.DeficitAlertRatio))
	}
	if cfg.LambdaFunction != "" {
		sinks = append(sinks, NewLambdaSink(awsCfg, cfg.LambdaFunction))
	}
	names := make([]string, len(sinks))
	for i, s := range sinks {
		names[i] = s.Name()
	}
	log.Info().Strs("sinks", names).Str("region", cfg.AWSRegion).Msg("report sinks ready")
	return sinks, nil
}
