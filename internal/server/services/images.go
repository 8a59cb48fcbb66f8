package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/logging"
	sc "github.com/dmitrijs2005/scanmed/internal/server/config"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

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

// ImageContentTypes lists the accepted scan image uploads.
var ImageContentTypes = []string{"image/jpeg", "image/png", "image/webp"}

// ImageService hands out presigned S3 URLs for scan images. The client
// uploads directly to the bucket and stores the returned key on the scan.
type ImageService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
	now         func() time.Time
}

func NewImageService(m repomanager.RepositoryManager, config *sc.Config, logger logging.Logger) *ImageService {
	return &ImageService{
		repomanager: m,
		config:      config,
		logger:      logger.With("module", "images"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ImageKey returns a fresh storage key under userID's scan image prefix.
func ImageKey(userID string, d time.Time) string {
	return fmt.Sprintf("%s%d/%02d/%02d/%v", scanImagePrefix(userID), d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ImageService) ttl() time.Duration {
	if s.config.PresignValidityDuration > 0 {
		return s.config.PresignValidityDuration
	}
	return 15 * time.Minute
}

func (s *ImageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func checkContentType(ct string) error {
	for _, allowed := range ImageContentTypes {
		if ct == allowed {
			return nil
		}
	}
	return common.NewValidationError("contentType", "must be one of "+strings.Join(ImageContentTypes, ", "))
}

// PresignUpload returns a new storage key and a presigned PUT URL for it.
func (s *ImageService) PresignUpload(ctx context.Context, userID, contentType string) (string, string, error) {
	if err := checkContentType(contentType); err != nil {
		return "", "", err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	bucket := s.config.S3Bucket
	key := ImageKey(userID, s.now())

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(s.ttl()))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	s.logger.Debug(ctx, "presigned image upload", "user_id", userID, "key", key)
	return key, req.URL, nil
}

// PresignScanImage returns a URL the owner can fetch the scan's image from.
// Images stored as absolute URLs are returned unchanged.
func (s *ImageService) PresignScanImage(ctx context.Context, userID, scanID string) (string, error) {
	scan, err := s.repomanager.Scans().Get(ctx, scanID)
	if err != nil {
		return "", storageError(err)
	}
	if err := checkOwner(scan.UserID, userID); err != nil {
		return "", err
	}
	if scan.ImageURL == nil || *scan.ImageURL == "" {
		return "", fmt.Errorf("%w: scan has no image", common.ErrorNotFound)
	}

	key := *scan.ImageURL
	if strings.HasPrefix(key, "https://") || strings.HasPrefix(key, "http://") {
		return key, nil
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.ttl()))
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return req.URL, nil
}
