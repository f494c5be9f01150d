package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/avolkovs/vidhub/internal/server/config"
)

func newTestStore() *Store {
	return NewStore(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "vidhub",
	})
}

func stubAWS(t *testing.T) {
	t.Helper()

	origLoad, origNewS3, origNewPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	origPut, origGet, origDel := presignPutObject, presignGetObject, deleteObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
		deleteObject = origDel
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client { return &s3.Client{} }
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
}

func TestPresignPut_ReturnsKeyAndURL(t *testing.T) {
	stubAWS(t)
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "http://signed/" + *in.Key}, nil
	}

	key, url, err := newTestStore().PresignPut(context.Background(), "avatars")
	if err != nil {
		t.Fatalf("PresignPut error: %v", err)
	}
	if !strings.HasPrefix(key, "avatars/") {
		t.Fatalf("key missing prefix: %q", key)
	}
	if url != "http://signed/"+key {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestPresignPut_UsesCallerContext(t *testing.T) {
	stubAWS(t)

	type ctxKey struct{}
	var got any
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		got = ctx.Value(ctxKey{})
		return aws.Config{}, nil
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "http://signed/" + *in.Key}, nil
	}

	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
	if _, _, err := newTestStore().PresignPut(ctx, "avatars"); err != nil {
		t.Fatalf("PresignPut error: %v", err)
	}
	if got != "marker" {
		t.Fatalf("config loader did not receive the caller's context")
	}
}

func TestPresignPut_ErrorFromPresign(t *testing.T) {
	stubAWS(t)
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-put-fail")
	}

	_, _, err := newTestStore().PresignPut(context.Background(), "videos")
	if err == nil || err.Error() != "presign-put-fail" {
		t.Fatalf("want presign-put-fail, got %v", err)
	}
}

func TestPresignGet_UsesGivenKey(t *testing.T) {
	stubAWS(t)
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "http://signed/" + *in.Key}, nil
	}

	url, err := newTestStore().PresignGet(context.Background(), "videos/2025/1/1/abc")
	if err != nil {
		t.Fatalf("PresignGet error: %v", err)
	}
	if url != "http://signed/videos/2025/1/1/abc" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestDelete_PropagatesError(t *testing.T) {
	stubAWS(t)
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
		return nil, errors.New("delete-fail")
	}

	err := newTestStore().Delete(context.Background(), "avatars/x")
	if err == nil || err.Error() != "delete-fail" {
		t.Fatalf("want delete-fail, got %v", err)
	}
}

func TestStorageKey_Distinct(t *testing.T) {
	a := StorageKey("videos")
	b := StorageKey("videos")
	if a == b {
		t.Fatalf("expected distinct keys, got %q twice", a)
	}
}
