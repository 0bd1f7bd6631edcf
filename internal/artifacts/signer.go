// Package artifacts turns the artifact reference of a test run into a link
// the browser can follow.
package artifacts

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds the settings needed to presign links into an S3-compatible store.
type Config struct {
	Endpoint  string // custom endpoint URL (e.g. http://localhost:3900)
	Region    string // "us-east-1" for real S3
	AccessKey string
	SecretKey string
	Expiry    time.Duration // lifetime of presigned links, zero means 1h
}

// Signer resolves artifact references. A nil *Signer passes references through.
type Signer struct {
	presign *s3.PresignClient
	expiry  time.Duration
	logger  *slog.Logger
}

// New creates a Signer from the given Config.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Signer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return newSigner(s3.NewFromConfig(awsCfg, opts...), cfg.Expiry, logger), nil
}

func newSigner(client *s3.Client, expiry time.Duration, logger *slog.Logger) *Signer {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &Signer{
		presign: s3.NewPresignClient(client),
		expiry:  expiry,
		logger:  logger,
	}
}

// ParseS3URI splits an s3://bucket/key reference.
func ParseS3URI(ref string) (bucket, key string, ok bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "s3" || u.Host == "" {
		return "", "", false
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", false
	}
	return u.Host, key, true
}

// Link returns a presigned GET URL for an s3:// reference. Any other
// reference, or any reference when s is nil, is returned unchanged.
func (s *Signer) Link(ctx context.Context, ref string) string {
	bucket, key, ok := ParseS3URI(ref)
	if s == nil || !ok {
		return ref
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		s.logger.Warn("presign artifact", "ref", ref, "error", err)
		return ref
	}
	return req.URL
}

// IsLink reports whether ref can be rendered as a hyperlink.
func IsLink(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
