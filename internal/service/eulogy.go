package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"twoem/internal/model"
	"twoem/internal/policy"
	"twoem/internal/repository"
	"twoem/internal/storage"
)

// pdfMagic is the signature every PDF payload starts with.
var pdfMagic = []byte("%PDF-")

// UploadEulogyInput carries a decoded eulogy upload. Eulogies are
// always public PDFs; the filename is derived from the deceased's name.
type UploadEulogyInput struct {
	Title        string
	DeceasedName string
	Description  string
	Content      []byte
}

// EulogyListResult is the service-level DTO for paginated eulogies.
type EulogyListResult struct {
	Items []model.Eulogy `json:"data"`
	Total int            `json:"total"`
}

// EulogyService defines the use cases for time-boxed eulogy records.
type EulogyService interface {
	// Upload stores a PDF eulogy with a validity window of 72 hours
	// fixed at creation.
	Upload(ctx context.Context, p model.Principal, in UploadEulogyInput) (*model.Eulogy, error)

	// List returns eulogies that have not yet expired. The listing is
	// public: memorial notices are meant to be found.
	List(ctx context.Context, limit, offset int) (*EulogyListResult, error)

	// Download streams the PDF if the record is still valid and
	// registers exactly one download per successful retrieval.
	Download(ctx context.Context, id string) (io.ReadCloser, *model.Eulogy, error)

	// Delete removes a eulogy before its natural expiry. Owner or admin only.
	Delete(ctx context.Context, p model.Principal, id string) error

	// Sweep deletes every eulogy expired at the moment the sweep
	// started and returns the number removed. Safe to run repeatedly
	// and concurrently with uploads.
	Sweep(ctx context.Context) (int, error)

	// Count returns the number of currently valid eulogies.
	Count(ctx context.Context) (int, error)
}

type eulogyService struct {
	store        storage.Storage
	repo         repository.EulogyRepository
	sweepDeleted prometheus.Counter

	// now is a hook for tests; production uses the wall clock.
	now func() time.Time
}

// NewEulogyService constructs a EulogyService. sweepDeleted counts
// records removed by expiry sweeps; pass a throwaway counter in tests.
func NewEulogyService(store storage.Storage, repo repository.EulogyRepository, sweepDeleted prometheus.Counter) EulogyService {
	return &eulogyService{
		store:        store,
		repo:         repo,
		sweepDeleted: sweepDeleted,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *eulogyService) Upload(ctx context.Context, p model.Principal, in UploadEulogyInput) (*model.Eulogy, error) {
	if len(in.Content) == 0 {
		return nil, ErrContentRequired
	}
	if !bytes.HasPrefix(in.Content, pdfMagic) {
		return nil, ErrInvalidContentType
	}

	createdAt := s.now()
	expiresAt := policy.ComputeExpiry(createdAt)
	filename := strings.ReplaceAll(in.DeceasedName, " ", "_") + "_eulogy.pdf"
	key := "eulogies/" + uuid.New().String() + ".pdf"

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(in.Content), storage.PutObjectOptions{
		Size:        int64(len(in.Content)),
		ContentType: "application/pdf",
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	e := &model.Eulogy{
		Record: model.Record{
			ID:          uuid.New().String(),
			OwnerID:     p.ID,
			Visibility:  model.VisibilityPublic,
			StoragePath: objInfo.Key,
			Filename:    filename,
			ContentType: "application/pdf",
			Size:        objInfo.Size,
			CreatedAt:   createdAt,
			ExpiresAt:   &expiresAt,
		},
		Title:        in.Title,
		DeceasedName: in.DeceasedName,
		Description:  in.Description,
	}
	stored, err := s.repo.Create(ctx, e)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *eulogyService) List(ctx context.Context, limit, offset int) (*EulogyListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, s.now(), repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &EulogyListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *eulogyService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Eulogy, error) {
	if id == "" {
		return nil, nil, ErrIDRequired
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	// Expiry is a derived predicate of the clock, never a stored flag.
	if policy.IsExpired(&e.Record, s.now()) {
		return nil, nil, ErrGone
	}

	rc, _, err := s.store.Get(ctx, e.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("get content: %w", err)
	}

	count, err := s.repo.IncrementDownloads(ctx, id)
	if err != nil {
		rc.Close()
		return nil, nil, fmt.Errorf("register download: %w", err)
	}
	e.DownloadCount = count
	return rc, e, nil
}

func (s *eulogyService) Delete(ctx context.Context, p model.Principal, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !policy.CanDelete(p, &e.Record) {
		return ErrForbidden
	}
	if err := s.store.Delete(ctx, e.StoragePath); err != nil {
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

// Sweep captures the clock once, deletes rows expired at that instant,
// then removes their objects. Rows created after the sweep began carry a
// future expires_at and can never match. Object removal is best effort:
// a failure leaves an orphaned object but never a visible record.
func (s *eulogyService) Sweep(ctx context.Context) (int, error) {
	now := s.now()
	paths, err := s.repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired: %w", err)
	}
	for _, p := range paths {
		if err := s.store.Delete(ctx, p); err != nil {
			logSweepOrphan(p, err)
		}
	}
	s.sweepDeleted.Add(float64(len(paths)))
	return len(paths), nil
}

func (s *eulogyService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx, s.now())
}

func logSweepOrphan(path string, err error) {
	entry := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     "error",
		"component": "eulogy_sweep",
		"msg":       "orphaned object left behind",
		"key":       path,
		"error":     err.Error(),
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
