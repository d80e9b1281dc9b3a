package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
	sc "github.com/dmitrijs2005/moviedeck/internal/server/config"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PosterKeyPrefix is the object storage folder holding uploaded posters.
const PosterKeyPrefix = "movie_posters/"

const presignExpiry = 15 * time.Minute

// fallbackPosterURLExpiry bounds the presigned GET stored as a poster URL
// when no public base URL is configured. Such URLs stop working after it,
// so the fallback is only fit for local development.
const fallbackPosterURLExpiry = 7 * 24 * time.Hour

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

// PosterUpload tells the client where to PUT poster bytes and where the
// poster can be fetched afterwards.
type PosterUpload struct {
	Key       string
	UploadURL string
	PublicURL string
}

// PosterService hands out presigned S3 URLs for movie posters.
type PosterService struct {
	config   *sc.Config
	log      logging.Logger
	validate *validator.Validate
}

func NewPosterService(config *sc.Config, log logging.Logger) *PosterService {
	s := &PosterService{
		config:   config,
		log:      log.With("module", "posters"),
		validate: validator.New(),
	}
	if config.S3PublicBaseURL == "" {
		s.log.Warn(context.Background(), "no public poster base URL configured, poster URLs will expire",
			"expires_after", fallbackPosterURLExpiry.String())
	}
	return s
}

func newPosterKey() string {
	return PosterKeyPrefix + uuid.NewString()
}

func (s *PosterService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
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

// CreateUpload issues a fresh poster key with a presigned PUT URL. The
// retrievable URL is the public base URL joined with the key. Without a
// public base it is a presigned GET valid for fallbackPosterURLExpiry,
// which is meant for development setups only.
func (s *PosterService) CreateUpload(ctx context.Context, contentType string) (*PosterUpload, error) {
	const op = "posters.CreateUpload"

	if err := s.validate.Var(contentType, "required,startswith=image/"); err != nil {
		return nil, common.E(common.KindValidation, op, fmt.Errorf("%w: content type must be an image", common.ErrValidation))
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, s.unavailable(ctx, op, err)
	}

	bucket := s.config.S3Bucket
	key := newPosterKey()

	put, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, s.unavailable(ctx, op, err)
	}

	public := ""
	if base := s.config.S3PublicBaseURL; base != "" {
		public = strings.TrimRight(base, "/") + "/" + key
	} else {
		get, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		}, s3.WithPresignExpires(fallbackPosterURLExpiry))
		if err != nil {
			return nil, s.unavailable(ctx, op, err)
		}
		public = get.URL
	}

	return &PosterUpload{Key: key, UploadURL: put.URL, PublicURL: public}, nil
}

func (s *PosterService) unavailable(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, "object storage failure", "op", op, "error", err)
	return common.E(common.KindUnavailable, op, err)
}
