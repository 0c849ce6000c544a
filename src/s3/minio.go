package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// Prefix under which firmware artifacts are stored in the bucket.
const artifactPrefix = "images/"

// MinIOOperator stores firmware image artifacts in an S3-compatible
// object store.
type MinIOOperator struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

// NewMinIOOperator creates a new MinIO operator
func NewMinIOOperator(ctx context.Context, bucket, endpoint, accessKey, secretKey, region string) (*MinIOOperator, error) {
	logrus.Infof("Creating MinIO operator for bucket: %s at endpoint: %s", bucket, endpoint)

	// Create custom endpoint resolver for MinIO
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			PartitionID:       "aws",
			URL:               endpoint,
			SigningRegion:     region,
			HostnameImmutable: true, // This prevents the SDK from prepending the bucket name to the hostname
		}, nil
	})

	// Load configuration
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(customResolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &MinIOOperator{
		client:   s3.NewFromConfig(cfg),
		bucket:   bucket,
		endpoint: endpoint,
	}, nil
}

// NewMinIOOperatorFromEnv creates an operator taking credentials from
// the S3_ACCESS_KEY and S3_SECRET_KEY env vars, and the endpoint from
// S3_ENDPOINT when not given.
func NewMinIOOperatorFromEnv(ctx context.Context, bucket, endpoint, region string) (*MinIOOperator, error) {
	if endpoint == "" {
		endpoint = os.Getenv("S3_ENDPOINT")
	}
	if endpoint == "" {
		return nil, fmt.Errorf("object storage endpoint must be provided using either --endpoint or S3_ENDPOINT env var")
	}

	return NewMinIOOperator(ctx, bucket, endpoint,
		os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"), region)
}

// artifactKey maps an image name to its object key.
func artifactKey(name string) string {
	return artifactPrefix + name + ".hex"
}

// Upload stores the raw bytes of a firmware image under the image name.
func (m *MinIOOperator) Upload(ctx context.Context, name string, data []byte) error {
	key := artifactKey(name)
	logrus.Infof("MinIO Upload: %s/%s (%d bytes)", m.bucket, key, len(data))

	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload artifact %s: %w", key, err)
	}

	return nil
}

// Download fetches a previously uploaded firmware image.
func (m *MinIOOperator) Download(ctx context.Context, name string) ([]byte, error) {
	key := artifactKey(name)
	logrus.Infof("MinIO Download: %s/%s", m.bucket, key)

	result, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact %s: %w", key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", key, err)
	}

	return data, nil
}

// Delete removes a firmware image artifact.
func (m *MinIOOperator) Delete(ctx context.Context, name string) error {
	key := artifactKey(name)
	logrus.Infof("MinIO Delete: %s/%s", m.bucket, key)

	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete artifact %s: %w", key, err)
	}

	return nil
}

// List returns the names of uploaded firmware image artifacts.
func (m *MinIOOperator) List(ctx context.Context) ([]string, error) {
	logrus.Infof("MinIO List: %s/%s", m.bucket, artifactPrefix)

	result, err := m.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(m.bucket),
		Prefix: aws.String(artifactPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	var names []string
	for _, obj := range result.Contents {
		names = append(names, *obj.Key)
	}

	return names, nil
}
