package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Archive_Put(t *testing.T) {
	client := &fakeS3{}
	a := newS3Archive(client, "reports-bucket", "reports")

	if err := a.Put(context.Background(), "user-1/report-2026-03.json", "application/json", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := aws.ToString(client.input.Bucket); got != "reports-bucket" {
		t.Errorf("expected bucket reports-bucket, got %s", got)
	}
	if got := aws.ToString(client.input.Key); got != "reports/user-1/report-2026-03.json" {
		t.Errorf("unexpected key %s", got)
	}
	if got := aws.ToString(client.input.ContentType); got != "application/json" {
		t.Errorf("unexpected content type %s", got)
	}
	if string(client.body) != `{"a":1}` {
		t.Errorf("unexpected body %s", client.body)
	}
}

func TestS3Archive_PutError(t *testing.T) {
	a := newS3Archive(&fakeS3{err: errors.New("access denied")}, "b", "")
	if err := a.Put(context.Background(), "k", "text/plain", nil); err == nil {
		t.Error("expected upload error")
	}
}

func TestNewS3Archive_Validation(t *testing.T) {
	if _, err := NewS3Archive(context.Background(), "", "us-east-1", "", ""); err == nil {
		t.Error("expected error for empty bucket")
	}
	if _, err := NewS3Archive(context.Background(), "b", "", "", ""); err == nil {
		t.Error("expected error for empty region")
	}
}
