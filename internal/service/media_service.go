package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var allowedMediaTypes = map[string]struct{}{
	"mp4": {}, "mov": {}, "jpg": {}, "png": {},
}

// Upload is one file sent with a media attachment request.
type Upload struct {
	Name string
	Data []byte
}

type MediaService interface {
	Attach(ctx context.Context, userID, postID string, files []Upload) ([]*models.MediaAsset, error)
	List(ctx context.Context, userID, postID string) ([]*models.MediaAsset, error)
}

type mediaService struct {
	pr    repository.CalendarPostRepository
	cr    repository.CalendarRepository
	ma    repository.MediaAssetRepository
	pm    repository.PostMediaRepository
	store ObjectStore
}

func NewMediaService(
	pr repository.CalendarPostRepository,
	cr repository.CalendarRepository,
	ma repository.MediaAssetRepository,
	pm repository.PostMediaRepository,
	store ObjectStore) MediaService {
	return &mediaService{
		pr:    pr,
		cr:    cr,
		ma:    ma,
		pm:    pm,
		store: store,
	}
}

// ReadUploads loads multipart files into memory for Attach.
func ReadUploads(files []*multipart.FileHeader) ([]Upload, error) {
	uploads := make([]Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("error opening file: %w", err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading file content: %w", err)
		}
		uploads = append(uploads, Upload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}

// Attach uploads the files and links them to the post after any media it
// already has.
func (s *mediaService) Attach(ctx context.Context, userID, postID string, files []Upload) ([]*models.MediaAsset, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", ErrInvalidInput)
	}
	if err := s.checkPost(ctx, userID, postID); err != nil {
		return nil, err
	}

	kinds := make([]types.Type, len(files))
	for i, f := range files {
		kind, err := filetype.Match(f.Data)
		if err != nil || kind == types.Unknown {
			return nil, fmt.Errorf("%w: unsupported file type for %s", ErrInvalidInput, f.Name)
		}
		if _, ok := allowedMediaTypes[kind.Extension]; !ok {
			return nil, fmt.Errorf("%w: file type %s is not allowed", ErrInvalidInput, kind.Extension)
		}
		kinds[i] = kind
	}

	existing, err := s.pm.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	var assets []*models.MediaAsset
	for i, f := range files {
		key, err := gonanoid.New()
		if err != nil {
			return nil, err
		}
		key = key + "." + kinds[i].Extension

		if err := s.store.Upload(ctx, key, f.Data, kinds[i].MIME.Value); err != nil {
			return nil, fmt.Errorf("error uploading file: %w", err)
		}

		asset := &models.MediaAsset{
			UserID:   userID,
			FileName: key,
			FileType: kinds[i].MIME.Value,
			FileSize: int64(len(f.Data)),
			FileURL:  s.store.PublicURL(key),
		}
		assetID, err := s.ma.Create(ctx, asset)
		if err != nil {
			return nil, fmt.Errorf("error saving media asset: %w", err)
		}

		link := &models.PostMedia{PostID: postID, AssetID: assetID, DisplayOrder: len(existing) + i}
		if err := s.pm.Create(ctx, link); err != nil {
			return nil, fmt.Errorf("error linking media: %w", err)
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func (s *mediaService) List(ctx context.Context, userID, postID string) ([]*models.MediaAsset, error) {
	if err := s.checkPost(ctx, userID, postID); err != nil {
		return nil, err
	}
	links, err := s.pm.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	assets := []*models.MediaAsset{}
	for _, l := range links {
		a, err := s.ma.GetByID(ctx, l.AssetID)
		if err != nil {
			return nil, err
		}
		if a != nil {
			assets = append(assets, a)
		}
	}
	return assets, nil
}

func (s *mediaService) checkPost(ctx context.Context, userID, postID string) error {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("calendar post %s: %w", postID, ErrNotFound)
	}
	calendar, err := s.cr.GetByID(ctx, post.CalendarID)
	if err != nil {
		return err
	}
	if calendar == nil || calendar.UserID != userID {
		return ErrForbidden
	}
	return nil
}
