package cloud

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
)

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Sink uploads each summary as JSON and PDF.
type S3Sink struct {
	api     s3API
	presign presigner
	bucket  string
}

func NewS3Sink(cfg aws.Config, bucket string) *S3Sink {
	client := s3.NewFromConfig(cfg)
	return &S3Sink{api: client, presign: s3.NewPresignClient(client), bucket: bucket}
}

func (c *S3Sink) Name() string { return "s3" }

// ReportKey is the object key prefix for a summary, without extension.
func ReportKey(s *report.Summary) string {
	return fmt.Sprintf("reports/microgrid-%d/%s/%s", s.MicrogridID, s.LastPeriod, s.ID)
}

func (c *S3Sink) Publish(ctx context.Context, s *report.Summary) error {
	body, err := report.JSON(s)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	key := ReportKey(s)
	if err := c.put(ctx, key+".json", body, "application/json", s); err != nil {
		return err
	}

	var pdf bytes.Buffer
	if err := report.WritePDF(&pdf, s); err != nil {
		return err
	}
	if err := c.put(ctx, key+".pdf", pdf.Bytes(), "application/pdf", s); err != nil {
		return err
	}

	if c.presign != nil {
		req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key + ".pdf"),
		}, func(opts *s3.PresignOptions) {
			opts.Expires = 1 * time.Hour
		})
		if err != nil {
			return fmt.Errorf("failed to generate presigned URL: %w", err)
		}
		log.Info().Str("report_id", s.ID).Str("url", req.URL).Msg("report uploaded")
	}
	return nil
}

func (c *S3Sink) put(ctx context.Context, key string, data []byte, contentType string, s *report.Summary) error {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"microgrid-id": fmt.Sprintf("%d", s.MicrogridID),
			"generated-at": s.GeneratedAt.Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}
	return nil
}
