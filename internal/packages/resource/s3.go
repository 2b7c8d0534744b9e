package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"contentpackage.run/internal/packages/packagetypes"
)

// ObjectGetter is the part of the S3 API the Loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config configures the client used for s3:// locators.
type S3Config struct {
	Region          string
	Endpoint        string // S3 compatible services, e.g. MinIO
	UsePathStyle    bool
	AccessKeyID     string
	SecretAccessKey string
}

const defaultS3Region = "us-east-1"

// NewS3Client builds an S3 client from the default AWS config chain,
// overridden by the given settings.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	if cfg.Region == "" {
		cfg.Region = defaultS3Region
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// ParseS3Locator splits s3://bucket/key into bucket and key.
func ParseS3Locator(locator string) (bucket, key string, err error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", "", fmt.Errorf("parse s3 locator %q: %w", locator, err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 locator %q, expected s3://bucket/key", locator)
	}
	return bucket, key, nil
}

func (l *Loader) openS3(ctx context.Context, locator string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3Locator(locator)
	if err != nil {
		return nil, &packagetypes.ResourceNotFoundError{Locator: locator, Err: err}
	}

	client, err := l.s3Getter(ctx)
	if err != nil {
		return nil, err
	}

	l.cfg.Log.V(1).Info("fetching s3 object", "bucket", bucket, "key", key)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if isNotFound(err) {
		return nil, &packagetypes.ResourceNotFoundError{Locator: locator, Err: err}
	}
	if err != nil {
		return nil, &packagetypes.IOError{Op: "get", Path: locator, Err: err}
	}
	return out.Body, nil
}

// s3Getter returns the configured client or builds one on first use.
func (l *Loader) s3Getter(ctx context.Context) (ObjectGetter, error) {
	if l.cfg.S3 != nil {
		return l.cfg.S3, nil
	}
	l.s3Once.Do(func() {
		l.s3Client, l.s3Err = l.newS3(ctx, l.cfg.S3Config)
	})
	return l.s3Client, l.s3Err
}

func newS3Client(ctx context.Context, cfg S3Config) (ObjectGetter, error) {
	return NewS3Client(ctx, cfg)
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return true
		}
	}
	return false
}
