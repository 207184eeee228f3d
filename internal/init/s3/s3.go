package s3

import (
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"log/slog"
	"os"
	"smokefree/config"
	"strings"
	"time"
)

// S3Storage holds the client used for the daily-log archive bucket.
type S3Storage struct {
	Client *s3.Client
	Cfg    config.S3Config
}

const initTimeout = 30 * time.Second

// NewS3Storage builds the S3 client and makes sure the archive bucket exists.
// The archive bucket stays private, unlike public asset buckets.
func NewS3Storage(appS3Cfg config.S3Config, log *slog.Logger) (*S3Storage, error) {
	log = log.With(slog.String("op", "s3.NewS3Storage"), slog.String("endpoint", appS3Cfg.Endpoint))

	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("S3_ACCESS_KEY or S3_SECRET_KEY environment variables are not set")
	}

	sdkLoadOptions := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		awsConfig.WithRegion(appS3Cfg.Region),
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	sdkCfg, err := awsConfig.LoadDefaultConfig(ctx, sdkLoadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if appS3Cfg.Endpoint != "" {
			endpointURL := appS3Cfg.Endpoint
			if !strings.HasPrefix(endpointURL, "http") {
				endpointURL = "https://" + endpointURL
			}
			o.BaseEndpoint = aws.String(endpointURL)
			o.UsePathStyle = true
		}
	})

	storage := &S3Storage{Client: client, Cfg: appS3Cfg}
	if err := storage.ensureBucketExists(ctx, appS3Cfg.ArchiveBucket, log); err != nil {
		log.Warn("archive bucket is not ready, archive uploads may fail", slog.String("error", err.Error()))
	}
	return storage, nil
}

func (s *S3Storage) ensureBucketExists(ctx context.Context, bucketName string, log *slog.Logger) error {
	log = log.With(slog.String("bucket", bucketName))

	_, err := s.Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucketName)})
	if err == nil {
		log.Info("bucket already exists")
		return nil
	}

	var apiError interface{ ErrorCode() string }
	if !errors.As(err, &apiError) || (apiError.ErrorCode() != "NotFound" && apiError.ErrorCode() != "NoSuchBucket") {
		return fmt.Errorf("head bucket %q: %w", bucketName, err)
	}

	var createBucketCfg *types.CreateBucketConfiguration
	if s.Cfg.Region != "" && s.Cfg.Region != "us-east-1" {
		createBucketCfg = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.Cfg.Region),
		}
	}
	_, createErr := s.Client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket:                    aws.String(bucketName),
		CreateBucketConfiguration: createBucketCfg,
	})
	if createErr != nil {
		var alreadyOwnedError *types.BucketAlreadyOwnedByYou
		var alreadyExistsError *types.BucketAlreadyExists
		if errors.As(createErr, &alreadyOwnedError) || errors.As(createErr, &alreadyExistsError) {
			return nil
		}
		return fmt.Errorf("create bucket %q: %w", bucketName, createErr)
	}
	log.Info("bucket created")
	return nil
}
