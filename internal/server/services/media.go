package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/server/policy"
	"github.com/google/uuid"
)

// MediaKind is the first segment of an object key.
type MediaKind string

const (
	MediaProfile MediaKind = "profile"
	MediaEvent   MediaKind = "event"
)

// PresignValidity bounds the lifetime of every presigned URL.
const PresignValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Upload is a presigned PUT together with the key to store on the account
// or event once the object is uploaded.
type Upload struct {
	Key string
	URL string
}

// MediaService hands out presigned S3 URLs for profile pictures and event images.
type MediaService struct {
	Deps
}

func NewMediaService(d Deps) *MediaService {
	return &MediaService{Deps: d.withDefaults()}
}

// StorageKey returns <kind>/<yyyy>/<mm>/<dd>/<uuid> for the given time.
func StorageKey(kind MediaKind, t time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d/%02d/%v", kind, t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *MediaService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.Config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.Config.S3RootUser,
			s.Config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.Config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// UploadURL issues a presigned PUT for a new object of the given kind.
// Event images are limited to actors allowed to create events.
func (s *MediaService) UploadURL(ctx context.Context, actor policy.Principal, kind MediaKind) (*Upload, error) {
	switch kind {
	case MediaProfile:
	case MediaEvent:
		if err := s.Policy.CanCreateEvent(actor).Err(); err != nil {
			return nil, err
		}
	default:
		return nil, common.Validation("Unknown media kind %q", kind)
	}

	var out Upload
	err := s.run(ctx, "media.upload_url", func(ctx context.Context) error {
		pc, err := s.getPresignClient(ctx)
		if err != nil {
			return err
		}

		bucket := s.Config.S3Bucket
		key := StorageKey(kind, s.Now())

		req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
			Bucket: &bucket,
			Key:    &key,
		}, s3.WithPresignExpires(PresignValidity))
		if err != nil {
			return err
		}

		out = Upload{Key: key, URL: req.URL}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadURL issues a presigned GET for key.
func (s *MediaService) DownloadURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", common.Validation("Key is required")
	}

	var url string
	err := s.run(ctx, "media.download_url", func(ctx context.Context) error {
		pc, err := s.getPresignClient(ctx)
		if err != nil {
			return err
		}

		bucket := s.Config.S3Bucket
		req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		}, s3.WithPresignExpires(PresignValidity))
		if err != nil {
			return err
		}

		url = req.URL
		return nil
	})
	return url, err
}
