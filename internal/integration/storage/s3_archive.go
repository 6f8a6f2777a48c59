// Package storage keeps exported report documents in S3.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// putObjectAPI is the part of the S3 client the archive uses.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archive implements adapter.ReportArchive.
type S3Archive struct {
	client putObjectAPI
	bucket string
	prefix string
}

// NewS3Archive creates an archive for the bucket. A non-empty endpoint targets an
// S3-compatible service such as LocalStack or MinIO with path-style addressing.
func NewS3Archive(ctx context.Context, bucket, region, prefix, endpoint string) (*S3Archive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket cannot be empty")
	}
	if region == "" {
		return nil, fmt.Errorf("region cannot be empty")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if endpoint != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("test", "test", ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Archive(client, bucket, prefix), nil
}

func newS3Archive(client putObjectAPI, bucket, prefix string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket, prefix: prefix}
}

// Put uploads body under prefix/key.
func (a *S3Archive) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(path.Join(a.prefix, key)),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
