package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"twoem/internal/model"
	"twoem/internal/policy"
	"twoem/internal/repository"
	"twoem/internal/storage"
)

// allowedFileExtensions mirrors the upload form: documents and images only.
var allowedFileExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".txt":  true,
}

// UploadFileInput carries a decoded upload. Content is the raw payload;
// base64 transfer encoding is the transport's concern, not the service's.
type UploadFileInput struct {
	Filename    string
	ContentType string
	Description string
	Content     []byte
	Public      bool
}

// FileListResult is the service-level DTO for paginated files.
type FileListResult struct {
	Items []model.File `json:"data"`
	Total int          `json:"total"`
}

// FileService defines the use cases for general downloads.
type FileService interface {
	// Upload stores the content in object storage, saves metadata to DB,
	// and rolls back the object if the DB save fails so a failed upload
	// never leaves a partial record.
	Upload(ctx context.Context, p model.Principal, in UploadFileInput) (*model.File, error)

	// List returns files visible to the principal, optionally narrowed
	// to public files only.
	List(ctx context.Context, p model.Principal, publicOnly bool, limit, offset int) (*FileListResult, error)

	// Download streams the content to an authorized principal and
	// registers exactly one download per successful retrieval.
	Download(ctx context.Context, p model.Principal, id string) (io.ReadCloser, *model.File, error)

	// Delete removes a file's metadata and content. Owner or admin only.
	Delete(ctx context.Context, p model.Principal, id string) error

	// Count returns the total number of stored files, for aggregate stats.
	Count(ctx context.Context) (int, error)
}

type fileService struct {
	store   storage.Storage
	repo    repository.FileRepository
	maxSize int64
}

// NewFileService constructs a FileService enforcing the given upload
// size ceiling in bytes.
func NewFileService(store storage.Storage, repo repository.FileRepository, maxSize int64) FileService {
	return &fileService{store: store, repo: repo, maxSize: maxSize}
}

func (s *fileService) Upload(ctx context.Context, p model.Principal, in UploadFileInput) (*model.File, error) {
	if len(in.Content) == 0 {
		return nil, ErrContentRequired
	}
	if int64(len(in.Content)) > s.maxSize {
		return nil, ErrPayloadTooLarge
	}
	ext := strings.ToLower(filepath.Ext(in.Filename))
	if !allowedFileExtensions[ext] {
		return nil, ErrInvalidContentType
	}

	visibility := model.VisibilityPrivate
	if in.Public {
		visibility = model.VisibilityPublic
	}

	key := "files/" + uuid.New().String() + ext

	// Content is published to object storage before the metadata row
	// commits; a DB failure removes the object again, so readers never
	// observe one without the other.
	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(in.Content), storage.PutObjectOptions{
		Size:        int64(len(in.Content)),
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	f := &model.File{
		Record: model.Record{
			ID:          uuid.New().String(),
			OwnerID:     p.ID,
			Visibility:  visibility,
			StoragePath: objInfo.Key,
			Filename:    in.Filename,
			ContentType: in.ContentType,
			Size:        objInfo.Size,
			CreatedAt:   time.Now().UTC(),
		},
		Description: in.Description,
	}
	stored, err := s.repo.Create(ctx, f)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated files without exposing repository types.
func (s *fileService) List(ctx context.Context, p model.Principal, publicOnly bool, limit, offset int) (*FileListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	filter := repository.FileFilter{
		ViewerID:    p.ID,
		ViewerAdmin: p.IsAdmin,
		PublicOnly:  publicOnly,
	}
	res, err := s.repo.List(ctx, filter, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &FileListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *fileService) Download(ctx context.Context, p model.Principal, id string) (io.ReadCloser, *model.File, error) {
	if id == "" {
		return nil, nil, ErrIDRequired
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	now := time.Now().UTC()
	if policy.IsExpired(&f.Record, now) {
		return nil, nil, ErrGone
	}
	if !policy.CanRead(p, &f.Record, now) {
		return nil, nil, ErrForbidden
	}

	rc, _, err := s.store.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("get content: %w", err)
	}

	count, err := s.repo.IncrementDownloads(ctx, id)
	if err != nil {
		rc.Close()
		return nil, nil, fmt.Errorf("register download: %w", err)
	}
	f.DownloadCount = count
	return rc, f, nil
}

// Delete removes a file from storage, then deletes its record.
func (s *fileService) Delete(ctx context.Context, p model.Principal, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !policy.CanDelete(p, &f.Record) {
		return ErrForbidden
	}
	// Delete from storage first; if this fails, keep DB row to avoid a
	// dangling metadata-less object.
	if err := s.store.Delete(ctx, f.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *fileService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
