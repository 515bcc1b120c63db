// internal/storage/s3_test.go
package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/pankajbeniwal/hudu-setup/internal/config"
)

type fakeHeadBucket struct {
	bucket string
	err    error
}

func (f *fakeHeadBucket) HeadBucket(_ context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.HeadBucketOutput{}, nil
}

func TestVerify_OK(t *testing.T) {
	fake := &fakeHeadBucket{}
	if err := Verify(context.Background(), fake, "mybucket"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.bucket != "mybucket" {
		t.Fatalf("expected HeadBucket on mybucket, got %s", fake.bucket)
	}
}

func TestVerify_APIErrors(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"NotFound", "does not exist"},
		{"Forbidden", "denied"},
		{"SlowDown", "SlowDown"},
	}
	for _, tt := range tests {
		fake := &fakeHeadBucket{err: &smithy.GenericAPIError{Code: tt.code}}
		err := Verify(context.Background(), fake, "mybucket")
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %v", tt.code, tt.want, err)
		}
	}
}

func TestVerify_NetworkError(t *testing.T) {
	cause := errors.New("dial tcp: no such host")
	err := Verify(context.Background(), &fakeHeadBucket{err: cause}, "mybucket")
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestEndpoint(t *testing.T) {
	tests := map[string]string{
		"":                          "",
		"minio.local:9000":          "https://minio.local:9000",
		"http://minio.local:9000":   "http://minio.local:9000",
		" https://s3.wasabisys.com": "https://s3.wasabisys.com",
	}
	for in, want := range tests {
		if got := Endpoint(in); got != want {
			t.Errorf("Endpoint(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient(config.S3{Endpoint: "minio.local:9000", Region: "eu-west-1", AccessKeyID: "k", SecretAccessKey: "s"})
	o := c.Options()
	if o.Region != "eu-west-1" {
		t.Fatalf("expected region eu-west-1, got %s", o.Region)
	}
	if aws.ToString(o.BaseEndpoint) != "https://minio.local:9000" || !o.UsePathStyle {
		t.Fatalf("expected custom path-style endpoint, got %v %v", aws.ToString(o.BaseEndpoint), o.UsePathStyle)
	}

	creds, err := o.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.AccessKeyID != "k" || creds.SecretAccessKey != "s" {
		t.Fatalf("unexpected credentials %+v", creds)
	}

	def := NewClient(config.S3{}).Options()
	if def.BaseEndpoint != nil || def.UsePathStyle || def.Region != config.DefaultRegion {
		t.Fatalf("expected AWS defaults, got endpoint=%v path-style=%v region=%s", def.BaseEndpoint, def.UsePathStyle, def.Region)
	}
}
