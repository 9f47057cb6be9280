package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/config"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
)

func summary(t *testing.T, generated float64) *report.Summary {
	t.Helper()
	s, err := report.Build(
		domain.Microgrid{ID: 3, Name: "Vila Verde"},
		[]domain.MonthlyRecord{{MicrogridID: 3, Year: 2024, Month: 12, WattsGenerated: generated, WattsConsumed: 100}},
		nil, nil,
		time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return s
}

type fakeS3 struct {
	keys  []string
	types []string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, aws.ToString(in.Key))
	f.types = append(f.types, aws.ToString(in.ContentType))
	return &s3.PutObjectOutput{}, nil
}

func TestS3SinkUploadsJSONAndPDF(t *testing.T) {
	fake := &fakeS3{}
	sink := &S3Sink{api: fake, bucket: "reports"}
	s := summary(t, 150)

	require.NoError(t, sink.Publish(context.Background(), s))
	prefix := "reports/microgrid-3/2024-12/" + s.ID
	assert.Equal(t, []string{prefix + ".json", prefix + ".pdf"}, fake.keys)
	assert.Equal(t, []string{"application/json", "application/pdf"}, fake.types)

	fake.err = errors.New("throttled")
	assert.ErrorContains(t, sink.Publish(context.Background(), s), "throttled")
}

type fakeDynamo struct{ in *dynamodb.PutItemInput }

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.in = in
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoDBSink(t *testing.T) {
	fake := &fakeDynamo{}
	sink := &DynamoDBSink{api: fake, table: "MicrogridSummaries"}
	require.NoError(t, sink.Publish(context.Background(), summary(t, 150)))

	require.NotNil(t, fake.in)
	assert.Equal(t, "MicrogridSummaries", aws.ToString(fake.in.TableName))
	id, ok := fake.in.Item["microgridId"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "3", id.Value)
	period, ok := fake.in.Item["lastPeriod"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "2024-12", period.Value)
}

type fakeSNS struct{ calls []*sns.PublishInput }

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.calls = append(f.calls, in)
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestSNSSinkOnlyAlertsOnDeficit(t *testing.T) {
	fake := &fakeSNS{}
	sink := &SNSSink{api: fake, topicArn: "arn:aws:sns:us-east-1:1:alerts", threshold: 1.0}

	require.NoError(t, sink.Publish(context.Background(), summary(t, 150)))
	assert.Empty(t, fake.calls)

	require.NoError(t, sink.Publish(context.Background(), summary(t, 50)))
	require.Len(t, fake.calls, 1)
	assert.Contains(t, aws.ToString(fake.calls[0].Subject), "Vila Verde")
	assert.Contains(t, aws.ToString(fake.calls[0].Message), "Generation/consumption: 0.50")
}

type fakeLambda struct{ in *lambda.InvokeInput }

func (f *fakeLambda) Invoke(_ context.Context, in *lambda.InvokeInput, _ ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.in = in
	return &lambda.InvokeOutput{StatusCode: 202}, nil
}

func TestLambdaSinkInvokesAsync(t *testing.T) {
	fake := &fakeLambda{}
	sink := &LambdaSink{api: fake, function: "analytics-processing"}
	s := summary(t, 150)
	require.NoError(t, sink.Publish(context.Background(), s))

	assert.Equal(t, lambdatypes.InvocationTypeEvent, fake.in.InvocationType)
	var payload AnalyticsPayload
	require.NoError(t, json.Unmarshal(fake.in.Payload, &payload))
	assert.Equal(t, AnalyticsPayload{ReportID: s.ID, MicrogridID: 3, Period: "2024-12"}, payload)
}

func TestSinksWithoutCloud(t *testing.T) {
	sinks, err := Sinks(context.Background(), &config.Config{UseCloudServices: false})
	require.NoError(t, err)
	require.Len(t, sinks, 1)
	assert.Equal(t, "log", sinks[0].Name())
}
