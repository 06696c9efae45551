package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"talent-match/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const S3Scheme = "s3://"

var ErrInvalidS3Ref = errors.New("invalid s3 reference")

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads objects addressed as s3://bucket/key.
type S3Source struct {
	client objectGetter
}

func NewS3Source(ctx context.Context, cfg config.StorageConfig) (*S3Source, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Source{client: client}, nil
}

func (s *S3Source) Handles(ref string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(ref)), S3Scheme)
}

func (s *S3Source) Open(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := ParseS3Ref(ref)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("read object body: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseS3Ref splits s3://bucket/key into its bucket and key.
func ParseS3Ref(ref string) (string, string, error) {
	ref = strings.TrimSpace(ref)
	if len(ref) < len(S3Scheme) || !strings.EqualFold(ref[:len(S3Scheme)], S3Scheme) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidS3Ref, ref)
	}
	rest := ref[len(S3Scheme):]
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || strings.Trim(key, "/") == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidS3Ref, ref)
	}
	return bucket, key, nil
}
