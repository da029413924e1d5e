package guest

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangarahotel/frontdesk-backend/internal/pkg/storage"
)

type fakeRepo struct {
	guests  map[string]*Guest
	docs    map[string]*Document
	history map[string][]*StayRecord
	seq     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		guests:  map[string]*Guest{},
		docs:    map[string]*Document{},
		history: map[string][]*StayRecord{},
	}
}

func (r *fakeRepo) Create(ctx context.Context, g *Guest) error {
	r.seq++
	g.ID = fmt.Sprintf("g%d", r.seq)
	cp := *g
	r.guests[g.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Guest, error) {
	g, ok := r.guests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, search string) ([]*ListItem, error) {
	var out []*ListItem
	for _, g := range r.guests {
		if search != "" && !strings.Contains(strings.ToLower(g.FullName), strings.ToLower(search)) {
			continue
		}
		out = append(out, &ListItem{Guest: *g})
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, g *Guest) error {
	if _, ok := r.guests[g.ID]; !ok {
		return ErrNotFound
	}
	cp := *g
	r.guests[g.ID] = &cp
	return nil
}

func (r *fakeRepo) History(ctx context.Context, guestID string) ([]*StayRecord, error) {
	return r.history[guestID], nil
}

func (r *fakeRepo) Archive(ctx context.Context, filter ArchiveFilter) ([]*ArchiveRecord, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) AddDocument(ctx context.Context, d *Document) error {
	r.seq++
	d.ID = fmt.Sprintf("d%d", r.seq)
	cp := *d
	r.docs[d.ID] = &cp
	return nil
}

func (r *fakeRepo) ListDocuments(ctx context.Context, guestID string) ([]*Document, error) {
	var out []*Document
	for _, d := range r.docs {
		if d.GuestID == guestID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetDocument(ctx context.Context, id string) (*Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, ErrDocsNotFound
	}
	cp := *d
	return &cp, nil
}

type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (s *memStorage) Save(ctx context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *memStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, ErrDocsNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Remove(ctx context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func strPtr(s string) *string { return &s }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// sampleJPEG encodes a small solid-color image the processor can decode.
func sampleJPEG(t *testing.T) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, img, nil))
	return buf
}

func newTestService(t *testing.T) (Service, *fakeRepo, *memStorage) {
	t.Helper()
	repo := newFakeRepo()
	files := newMemStorage()
	return NewService(repo, files, storage.NewImageProcessor()), repo, files
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	g, err := svc.Create(ctx, CreateRequest{FullName: "Aziza Karimova", Phone: "+998901234567"})
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "passport", g.IDType, "default id type")

	g2, err := svc.Create(ctx, CreateRequest{FullName: "Jasur Toshev", IDType: "id_card"})
	require.NoError(t, err)
	assert.Equal(t, "id_card", g2.IDType)
}

func TestUpdateIdentityImmutability(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	g, err := svc.Create(ctx, CreateRequest{FullName: "Aziza Karimova"})
	require.NoError(t, err)

	t.Run("empty identity fields may be filled in", func(t *testing.T) {
		updated, err := svc.Update(ctx, g.ID, UpdateRequest{
			PassportID: strPtr("AB1234567"),
			BirthDate:  datePtr(1990, time.May, 14),
		})
		require.NoError(t, err)
		assert.Equal(t, "AB1234567", updated.PassportID)
		require.NotNil(t, updated.BirthDate)
	})

	t.Run("set identity fields cannot be changed", func(t *testing.T) {
		_, err := svc.Update(ctx, g.ID, UpdateRequest{PassportID: strPtr("ZZ0000000")})
		assert.ErrorIs(t, err, ErrImmutable)

		_, err = svc.Update(ctx, g.ID, UpdateRequest{BirthDate: datePtr(1991, time.May, 14)})
		assert.ErrorIs(t, err, ErrImmutable)

		assert.Equal(t, "AB1234567", repo.guests[g.ID].PassportID, "rejected update must not persist")
	})

	t.Run("resubmitting the same identity value is fine", func(t *testing.T) {
		_, err := svc.Update(ctx, g.ID, UpdateRequest{PassportID: strPtr("AB1234567")})
		assert.NoError(t, err)
	})

	t.Run("contact fields stay editable", func(t *testing.T) {
		updated, err := svc.Update(ctx, g.ID, UpdateRequest{
			Phone:  strPtr("+998935554433"),
			Region: strPtr("Samarqand"),
		})
		require.NoError(t, err)
		assert.Equal(t, "+998935554433", updated.Phone)
		assert.Equal(t, "Samarqand", updated.Region)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, g.ID, UpdateRequest{})
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestHistoryRequiresGuest(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	g, err := svc.Create(ctx, CreateRequest{FullName: "Jasur Toshev"})
	require.NoError(t, err)
	repo.history[g.ID] = []*StayRecord{{BookingID: "b1", RoomNumber: "101"}}

	records, err := svc.History(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "101", records[0].RoomNumber)

	_, err = svc.History(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()
	svc, _, files := newTestService(t)

	g, err := svc.Create(ctx, CreateRequest{FullName: "Aziza Karimova"})
	require.NoError(t, err)

	t.Run("upload stores scan and thumbnail", func(t *testing.T) {
		doc, err := svc.UploadDocument(ctx, g.ID, sampleJPEG(t))
		require.NoError(t, err)
		assert.Contains(t, doc.FilePath, "guests/"+g.ID+"/")
		assert.Contains(t, doc.ThumbPath, "_thumb.jpg")
		assert.Contains(t, files.files, doc.FilePath)
		assert.Contains(t, files.files, doc.ThumbPath)

		rc, err := svc.OpenDocument(ctx, doc.ID, true)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, files.files[doc.ThumbPath], data)
	})

	t.Run("rejects non-image uploads", func(t *testing.T) {
		_, err := svc.UploadDocument(ctx, g.ID, strings.NewReader("not a picture"))
		assert.ErrorIs(t, err, ErrNotAnImage)
	})

	t.Run("unknown guest", func(t *testing.T) {
		_, err := svc.UploadDocument(ctx, "missing", sampleJPEG(t))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
