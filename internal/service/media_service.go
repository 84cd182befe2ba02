package service

import (
	"context"
	"fmt"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"

	config "socialdesk/configs"
	"socialdesk/internal/models"
	"socialdesk/internal/repository"
	"socialdesk/internal/transfer"
	"socialdesk/pkg/apperrors"
)

var allowedFileTypes = map[string]struct{}{
	"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {}, "gif": {},
}

type MediaService interface {
	Upload(ctx context.Context, actor transfer.Actor, fileName string, data []byte) (*models.MediaAsset, error)
	ListByUploader(ctx context.Context, actor transfer.Actor) ([]*models.MediaAsset, error)
}

type mediaService struct {
	cfg    config.Config
	access AccessService
	r2     *R2Service
	ma     repository.MediaAssetRepository
}

func NewMediaService(cfg config.Config, access AccessService, r2 *R2Service, ma repository.MediaAssetRepository) MediaService {
	return &mediaService{
		cfg:    cfg,
		access: access,
		r2:     r2,
		ma:     ma,
	}
}

// Upload sniffs the file type from content, stores the bytes in R2
// under a generated key, and records the asset.
func (s *mediaService) Upload(ctx context.Context, actor transfer.Actor, fileName string, data []byte) (*models.MediaAsset, error) {
	if err := s.access.Authorize(ctx, actor, OpUploadMedia, 0); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, apperrors.New(apperrors.InvalidArgument, "file is empty")
	}

	fileType, err := filetype.Match(data)
	if err != nil || fileType == types.Unknown {
		return nil, apperrors.New(apperrors.InvalidArgument, "unsupported file type")
	}
	if _, ok := allowedFileTypes[fileType.Extension]; !ok {
		return nil, apperrors.Newf(apperrors.InvalidArgument, "file type %s is not allowed", fileType.Extension)
	}

	key, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	if err := s.r2.UploadToR2(ctx, key, data, fileType.MIME.Value); err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}

	asset := &models.MediaAsset{
		UploaderID: actor.UserID,
		FileName:   fileName,
		FileType:   fileType.MIME.Value,
		FileSize:   int64(len(data)),
		FileURL:    s.cfg.R2.PublicBaseURL + "/" + key,
	}

	id, err := s.ma.Create(ctx, asset)
	if err != nil {
		return nil, err
	}
	asset.ID = id
	return asset, nil
}

func (s *mediaService) ListByUploader(ctx context.Context, actor transfer.Actor) ([]*models.MediaAsset, error) {
	if err := s.access.Authorize(ctx, actor, OpUploadMedia, 0); err != nil {
		return nil, err
	}
	return s.ma.ListByUploader(ctx, actor.UserID)
}
