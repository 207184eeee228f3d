package s3

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	s3init "smokefree/internal/init/s3"
	"smokefree/internal/modules/dailylog"
)

// DailyLogArchive writes archive objects into the private archive bucket.
type DailyLogArchive struct {
	log    *slog.Logger
	client *s3.Client
	bucket string
}

func NewDailyLogArchive(log *slog.Logger, storage *s3init.S3Storage) *DailyLogArchive {
	return &DailyLogArchive{
		log:    log,
		client: storage.Client,
		bucket: storage.Cfg.ArchiveBucket,
	}
}

func (a *DailyLogArchive) PutArchive(ctx context.Context, key string, body []byte) error {
	op := "DailyLogArchive.PutArchive"
	log := a.log.With(slog.String("op", op), slog.String("bucket", a.bucket), slog.String("key", key))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		log.Error("failed to upload daily log archive", "error", err)
		return dailylog.ErrArchiveUploadFailed
	}

	log.Info("daily log archive uploaded", slog.Int("bytes", len(body)))
	return nil
}
