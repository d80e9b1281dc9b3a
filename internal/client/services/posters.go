package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/moviedeck/internal/client/client"
	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/netx"
)

// uploadFunc PUTs bytes to a presigned URL.
type uploadFunc func(ctx context.Context, url, contentType string, body []byte) error

type PosterService struct {
	client client.Client
	upload uploadFunc
}

func NewPosterService(c client.Client, hc *http.Client) *PosterService {
	return &PosterService{
		client: c,
		upload: func(ctx context.Context, url, contentType string, body []byte) error {
			return netx.UploadToPresignedURL(ctx, hc, url, contentType, body)
		},
	}
}

// Upload stores a poster and returns the URL it can be fetched from.
func (s *PosterService) Upload(ctx context.Context, contentType string, body []byte) (string, error) {
	const op = "PosterService.Upload"

	slot, err := s.client.CreatePosterUpload(ctx, contentType)
	if err != nil {
		return "", err
	}
	if err := s.upload(ctx, slot.UploadURL, contentType, body); err != nil {
		return "", common.E(common.KindUnavailable, op, err)
	}
	return slot.PublicURL, nil
}
