package item

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

func (s *service) UploadPhoto(ctx context.Context, callerID, itemID string, header *multipart.FileHeader) (*Photo, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrPhotoNotImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the content so it can be read twice: once for the original,
	// once for the thumbnail.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	photoID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Sharding path: photos/ab/UUID.ext
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.store.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save photo to storage: %w", err)
	}

	var thumbnailPath *string
	if thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 200, 200); err == nil {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.store.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	} else {
		s.logger.Warn().Err(err).Str("item_id", i.ID).Msg("thumbnail generation failed")
	}

	p := &Photo{
		ID:            photoID,
		ItemID:        i.ID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
	}

	if err := s.photos.Create(ctx, p); err != nil {
		// Clean up storage if the metadata write fails.
		_ = s.store.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.store.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	s.logger.Info().Str("item_id", i.ID).Str("photo_id", p.ID).Msg("photo uploaded")
	return p, nil
}

func (s *service) DownloadPhoto(ctx context.Context, photoID string) (io.ReadCloser, *Photo, error) {
	p, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.store.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve photo from storage: %w", err)
	}

	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, photoID string) (io.ReadCloser, *Photo, error) {
	p, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, nil, err
	}

	if p.ThumbnailPath == nil {
		return nil, nil, ErrPhotoNotFound
	}

	stream, err := s.store.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, p, nil
}

func (s *service) DeletePhoto(ctx context.Context, callerID, photoID string) error {
	p, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return err
	}

	i, err := s.repo.GetByID(ctx, p.ItemID)
	if err != nil {
		return err
	}
	if i.OwnerID != callerID {
		return ErrNotOwner
	}

	// Best-effort storage cleanup; metadata removal decides the outcome.
	_ = s.store.Delete(ctx, p.StoragePath)
	if p.ThumbnailPath != nil {
		_ = s.store.Delete(ctx, *p.ThumbnailPath)
	}

	if err := s.photos.Delete(ctx, photoID); err != nil {
		return err
	}

	s.logger.Info().Str("photo_id", photoID).Msg("photo deleted")
	return nil
}
