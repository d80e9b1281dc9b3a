package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
	sc "github.com/dmitrijs2005/moviedeck/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPosterService(publicBase string) *PosterService {
	return NewPosterService(&sc.Config{
		S3Region:        "us-east-1",
		S3RootUser:      "minioadmin",
		S3RootPassword:  "minioadmin",
		S3BaseEndpoint:  "http://127.0.0.1:9000",
		S3Bucket:        "moviedeck",
		S3PublicBaseURL: publicBase,
	}, logging.Nop())
}

// stubPresign replaces the AWS seams for the duration of the test.
func stubPresign(t *testing.T, putErr, getErr error) (puts, gets *[]string) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return &s3.Client{}
	}
	newS3PresignClient = func(*s3.Client) *s3.PresignClient { return &s3.PresignClient{} }

	puts, gets = new([]string), new([]string)
	presignPutObject = func(_ *s3.PresignClient, _ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if putErr != nil {
			return nil, putErr
		}
		assert.Equal(t, "moviedeck", *in.Bucket)
		assert.Equal(t, "image/png", *in.ContentType)
		*puts = append(*puts, *in.Key)
		return &v4.PresignedHTTPRequest{URL: "http://s3/put/" + *in.Key, Method: http.MethodPut}, nil
	}
	presignGetObject = func(_ *s3.PresignClient, _ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if getErr != nil {
			return nil, getErr
		}
		*gets = append(*gets, *in.Key)
		return &v4.PresignedHTTPRequest{URL: "http://s3/get/" + *in.Key, Method: http.MethodGet}, nil
	}
	return puts, gets
}

func TestCreateUpload_PublicBase(t *testing.T) {
	puts, gets := stubPresign(t, nil, nil)
	svc := newPosterService("https://cdn.example.com/posters/")

	up, err := svc.CreateUpload(context.Background(), "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(up.Key, PosterKeyPrefix))
	assert.Equal(t, "http://s3/put/"+up.Key, up.UploadURL)
	assert.Equal(t, "https://cdn.example.com/posters/"+up.Key, up.PublicURL)
	assert.Equal(t, []string{up.Key}, *puts)
	assert.Empty(t, *gets)
}

func TestCreateUpload_PresignedGet(t *testing.T) {
	_, gets := stubPresign(t, nil, nil)
	svc := newPosterService("")

	up, err := svc.CreateUpload(context.Background(), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://s3/get/"+up.Key, up.PublicURL)
	assert.Equal(t, []string{up.Key}, *gets)
}

func TestNewPosterService_WarnsWithoutPublicBase(t *testing.T) {
	cfg := &sc.Config{S3Bucket: "moviedeck"}

	var buf bytes.Buffer
	log, err := logging.NewSlogJSON(&buf, "warn")
	require.NoError(t, err)
	NewPosterService(cfg, log)
	assert.Contains(t, buf.String(), "poster URLs will expire")
	assert.Contains(t, buf.String(), `"expires_after":"168h0m0s"`)

	buf.Reset()
	cfg.S3PublicBaseURL = "https://cdn.example.com/posters"
	NewPosterService(cfg, log)
	assert.Empty(t, buf.String())
}

func TestCreateUpload_Errors(t *testing.T) {
	stubPresign(t, errors.New("put failed"), nil)
	svc := newPosterService("")

	_, err := svc.CreateUpload(context.Background(), "text/plain")
	assert.Equal(t, common.KindValidation, common.KindOf(err))

	_, err = svc.CreateUpload(context.Background(), "image/png")
	assert.Equal(t, common.KindUnavailable, common.KindOf(err))
}

func TestCreateUpload_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := newPosterService("").CreateUpload(context.Background(), "image/jpeg")
	assert.Equal(t, common.KindUnavailable, common.KindOf(err))
}
