package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"

	"github.com/marconi-lab/annotator/internal/config"
)

// S3Deps bundles the S3 client with the upload/download helpers the repos
// and services need.
type S3Deps struct {
	Client        *s3.Client
	Uploader      *manager.Uploader
	Bucket        string
	publicBaseURL string
}

func NewS3(ctx context.Context, cfg *config.Config) (*S3Deps, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = &cfg.S3.Endpoint
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	})

	return &S3Deps{
		Client:        client,
		Uploader:      manager.NewUploader(client),
		Bucket:        cfg.S3.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.S3.PublicBaseURL, "/"),
	}, nil
}

// Upload stores an object and returns its public URL.
func (d *S3Deps) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := d.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &d.Bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return d.PublicURL(key), nil
}

// Download returns a reader over the stored object. Callers must close it.
func (d *S3Deps) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := d.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &d.Bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", key, err)
	}
	return out.Body, nil
}

// DeleteObjects removes up to 1000 keys per call.
func (d *S3Deps) DeleteObjects(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for i := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: &keys[i]})
	}
	_, err := d.Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: &d.Bucket,
		Delete: &types.Delete{Objects: objects},
	})
	return err
}

// PublicURL maps a stored key onto the static-file URL clients fetch.
func (d *S3Deps) PublicURL(key string) string {
	return d.publicBaseURL + "/" + key
}

// KeyFromURL is the inverse of PublicURL for objects this service stored.
func (d *S3Deps) KeyFromURL(url string) string {
	return strings.TrimPrefix(strings.TrimPrefix(url, d.publicBaseURL), "/")
}
