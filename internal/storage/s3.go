// internal/storage/s3.go

// Package storage checks that the S3 settings an operator typed actually
// reach a bucket before they are baked into the env file.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/pankajbeniwal/hudu-setup/internal/config"
)

const checkTimeout = 15 * time.Second

// HeadBucketAPI is the part of *s3.Client used here.
type HeadBucketAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// NewClient builds a client from the wizard's S3 answers only. Ambient AWS
// profiles and environment credentials are not consulted.
func NewClient(c config.S3) *s3.Client {
	creds := aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     c.AccessKeyID,
			SecretAccessKey: c.SecretAccessKey,
			Source:          "hudu-setup",
		}, nil
	})

	region := c.Region
	if region == "" {
		region = config.DefaultRegion
	}

	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(creds),
	}, func(o *s3.Options) {
		if endpoint := Endpoint(c.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			// MinIO and most non-AWS providers only serve path-style URLs.
			o.UsePathStyle = true
		}
	})
}

// Endpoint adds https:// to a bare host name.
func Endpoint(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, "://") {
		return s
	}
	return "https://" + s
}

// Verify confirms bucket exists and the credentials may access it.
func Verify(ctx context.Context, api HeadBucketAPI, bucket string) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	_, err := api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket":
			return fmt.Errorf("bucket %s does not exist", bucket)
		case "Forbidden", "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("access to bucket %s denied (%s); check the access key and secret", bucket, apiErr.ErrorCode())
		}
		return fmt.Errorf("bucket %s: %s", bucket, apiErr.ErrorCode())
	}
	return fmt.Errorf("failed to reach bucket %s: %w", bucket, err)
}

func VerifyConfig(ctx context.Context, c config.S3) error {
	return Verify(ctx, NewClient(c), c.Bucket)
}
