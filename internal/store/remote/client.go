package remote

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds the connection settings of an S3 compatible service.
type Config struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the AWS endpoint, e.g. http://127.0.0.1:9000 for MinIO.
	Endpoint string
	Bucket   string
	// Prefix is prepended to every object key.
	Prefix string
}

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// NewClient builds an S3 client with static credentials. Path-style
// addressing is forced so MinIO style endpoints work without DNS tricks.
func NewClient(ctx context.Context, c Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(c.Region),
	}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = true
	})
	return client, nil
}
