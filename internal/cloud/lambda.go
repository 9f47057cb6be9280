package cloud

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
)

type lambdaAPI interface {
	Invoke(ctx context.Context, in *lambda.InvokeInput, opts ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// AnalyticsPayload is the event handed to the analytics function.
type AnalyticsPayload struct {
	ReportID    string `json:"report_id"`
	MicrogridID int64  `json:"microgrid_id"`
	Period      string `json:"period"`
}

// LambdaSink fires the analytics function without waiting for its result.
type LambdaSink struct {
	api      lambdaAPI
	function string
}

func NewLambdaSink(cfg aws.Config, function string) *LambdaSink {
	return &LambdaSink{api: lambda.NewFromConfig(cfg), function: function}
}

func (c *LambdaSink) Name() string { return "lambda" }

func (c *LambdaSink) Publish(ctx context.Context, s *report.Summary) error {
	payload, err := json.Marshal(AnalyticsPayload{
		ReportID:    s.ID,
		MicrogridID: s.MicrogridID,
		Period:      s.LastPeriod.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	out, err := c.api.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(c.function),
		Payload:        payload,
		InvocationType: types.InvocationTypeEvent,
	})
	if err != nil {
		return fmt.Errorf("failed to invoke Lambda: %w", err)
	}
	if out.FunctionError != nil {
		return fmt.Errorf("Lambda function error: %s", *out.FunctionError)
	}
	return nil
}
