package guest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dangarahotel/frontdesk-backend/internal/pkg/storage"
)

type CreateRequest struct {
	FullName   string
	Phone      string
	IDType     string
	IDNumber   string
	PassportID string
	BirthDate  *time.Time
	Nation     string
	Region     string
	Street     string
}

type UpdateRequest struct {
	FullName   *string
	Phone      *string
	IDType     *string
	IDNumber   *string
	PassportID *string
	BirthDate  *time.Time
	Nation     *string
	Region     *string
	Street     *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Guest, error)
	GetByID(ctx context.Context, id string) (*Guest, error)
	List(ctx context.Context, search string) ([]*ListItem, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Guest, error)
	History(ctx context.Context, guestID string) ([]*StayRecord, error)
	Archive(ctx context.Context, filter ArchiveFilter) ([]*ArchiveRecord, int, error)

	UploadDocument(ctx context.Context, guestID string, content io.Reader) (*Document, error)
	ListDocuments(ctx context.Context, guestID string) ([]*Document, error)
	OpenDocument(ctx context.Context, id string, thumb bool) (io.ReadCloser, error)
}

type service struct {
	repo   Repository
	files  storage.Storage
	images *storage.ImageProcessor
}

func NewService(repo Repository, files storage.Storage, images *storage.ImageProcessor) Service {
	return &service{
		repo:   repo,
		files:  files,
		images: images,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Guest, error) {
	idType := req.IDType
	if idType == "" {
		idType = "passport"
	}

	g := &Guest{
		FullName:   req.FullName,
		Phone:      req.Phone,
		IDType:     idType,
		IDNumber:   req.IDNumber,
		PassportID: req.PassportID,
		BirthDate:  req.BirthDate,
		Nation:     req.Nation,
		Region:     req.Region,
		Street:     req.Street,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Guest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, search string) ([]*ListItem, error) {
	return s.repo.List(ctx, search)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Guest, error) {
	if req.FullName == nil && req.Phone == nil && req.IDType == nil && req.IDNumber == nil &&
		req.PassportID == nil && req.BirthDate == nil && req.Nation == nil &&
		req.Region == nil && req.Street == nil {
		return nil, ErrNoData
	}

	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Identity fields may be filled in while still empty but never changed
	// afterwards.
	if req.IDType != nil && g.IDType != "" && *req.IDType != g.IDType {
		return nil, ErrImmutable
	}
	if req.IDNumber != nil && g.IDNumber != "" && *req.IDNumber != g.IDNumber {
		return nil, ErrImmutable
	}
	if req.PassportID != nil && g.PassportID != "" && *req.PassportID != g.PassportID {
		return nil, ErrImmutable
	}
	if req.BirthDate != nil && g.BirthDate != nil && !req.BirthDate.Equal(*g.BirthDate) {
		return nil, ErrImmutable
	}

	if req.FullName != nil {
		g.FullName = *req.FullName
	}
	if req.Phone != nil {
		g.Phone = *req.Phone
	}
	if req.IDType != nil {
		g.IDType = *req.IDType
	}
	if req.IDNumber != nil {
		g.IDNumber = *req.IDNumber
	}
	if req.PassportID != nil {
		g.PassportID = *req.PassportID
	}
	if req.BirthDate != nil {
		g.BirthDate = req.BirthDate
	}
	if req.Nation != nil {
		g.Nation = *req.Nation
	}
	if req.Region != nil {
		g.Region = *req.Region
	}
	if req.Street != nil {
		g.Street = *req.Street
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) History(ctx context.Context, guestID string) ([]*StayRecord, error) {
	if _, err := s.repo.GetByID(ctx, guestID); err != nil {
		return nil, err
	}
	return s.repo.History(ctx, guestID)
}

func (s *service) Archive(ctx context.Context, filter ArchiveFilter) ([]*ArchiveRecord, int, error) {
	return s.repo.Archive(ctx, filter)
}

func (s *service) UploadDocument(ctx context.Context, guestID string, content io.Reader) (*Document, error) {
	if _, err := s.repo.GetByID(ctx, guestID); err != nil {
		return nil, err
	}

	// Buffer the upload so it can be decoded twice (full size + thumbnail).
	raw, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}

	normalized, err := s.images.Normalize(bytes.NewReader(raw), 1600, 1600)
	if err != nil {
		return nil, ErrNotAnImage
	}
	thumb, err := s.images.Thumbnail(bytes.NewReader(raw), 320, 320)
	if err != nil {
		return nil, ErrNotAnImage
	}

	name := uuid.NewString()
	filePath := fmt.Sprintf("guests/%s/%s.jpg", guestID, name)
	thumbPath := fmt.Sprintf("guests/%s/%s_thumb.jpg", guestID, name)

	if err := s.files.Save(ctx, filePath, normalized); err != nil {
		return nil, fmt.Errorf("store document failed: %w", err)
	}
	if err := s.files.Save(ctx, thumbPath, thumb); err != nil {
		return nil, fmt.Errorf("store thumbnail failed: %w", err)
	}

	d := &Document{
		GuestID:   guestID,
		FilePath:  filePath,
		ThumbPath: thumbPath,
	}
	if err := s.repo.AddDocument(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) ListDocuments(ctx context.Context, guestID string) ([]*Document, error) {
	if _, err := s.repo.GetByID(ctx, guestID); err != nil {
		return nil, err
	}
	return s.repo.ListDocuments(ctx, guestID)
}

func (s *service) OpenDocument(ctx context.Context, id string, thumb bool) (io.ReadCloser, error) {
	d, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	path := d.FilePath
	if thumb {
		path = d.ThumbPath
	}
	return s.files.Open(ctx, path)
}
