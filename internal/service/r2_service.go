package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	config "github.com/manypost/manypost/configs"
	"github.com/manypost/manypost/internal/models"
)

const signedURLExpiry = time.Hour

// R2Service talks to Cloudflare R2 through its S3-compatible API. The
// browser uploads directly against presigned URLs; the backend never proxies
// video bytes on the way in.
type R2Service struct {
	config config.Config
}

func NewR2Service(cfg config.Config) *R2Service {
	return &R2Service{config: cfg}
}

func (r *R2Service) client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.R2.AccessKey, r.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.R2.AccountID))
	}), nil
}

// ObjectKey namespaces every object under its owner.
func (r *R2Service) ObjectKey(userID int64, fileName string) string {
	return fmt.Sprintf("%d/%s-%s", userID, uuid.NewString(), fileName)
}

func (r *R2Service) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.r2.cloudflarestorage.com/%s", r.config.R2.BucketName, r.config.R2.AccountID, key)
}

// PresignUpload returns a time-limited URL the browser PUTs the file against.
func (r *R2Service) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	client, err := r.client(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	presigner := s3.NewPresignClient(client)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.config.R2.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = signedURLExpiry
	})
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	return req.URL, nil
}

func (r *R2Service) DeleteObject(ctx context.Context, key string) error {
	client, err := r.client(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.config.R2.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	return nil
}
