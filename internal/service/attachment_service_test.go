package service_test

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Beyond-Company/Ticketing-backend/internal/config"
	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository/repotest"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	"github.com/Beyond-Company/Ticketing-backend/internal/storage"
)

// memStore keeps blobs in a map.
type memStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

var _ storage.FileStore = (*memStore)(nil)

func newMemStore() *memStore { return &memStore{blobs: make(map[string][]byte)} }

func (s *memStore) Save(_ context.Context, storedName string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[storedName] = data
	return nil
}

func (s *memStore) Open(_ context.Context, storedName string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[storedName]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) Delete(_ context.Context, storedName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, storedName)
	return nil
}

func (s *memStore) has(storedName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[storedName]
	return ok
}

type attachmentFixture struct {
	orgID       string
	tickets     *repotest.Tickets
	attachments *repotest.Attachments
	store       *memStore
	service     *service.AttachmentService
	ticket      *domain.Ticket
}

func newAttachmentFixture(t *testing.T) *attachmentFixture {
	t.Helper()
	f := &attachmentFixture{
		orgID:       uuid.NewString(),
		tickets:     repotest.NewTickets(),
		attachments: repotest.NewAttachments(),
		store:       newMemStore(),
	}
	cfg := config.StorageConfig{
		MaxUploadBytes: 64,
		AllowedMime:    []string{"text/plain", "image/png"},
	}
	f.service = service.NewAttachmentService(cfg, service.AttachmentDependencies{
		AttachmentRepo: f.attachments,
		TicketRepo:     f.tickets,
		Store:          f.store,
	})

	userID := uuid.NewString()
	f.ticket = &domain.Ticket{
		OrganizationID: f.orgID,
		Title:          "Broken laptop",
		Description:    "screen flickers",
		StatusID:       uuid.NewString(),
		Priority:       domain.TicketPriorityMedium,
		UserID:         &userID,
	}
	require.NoError(t, f.tickets.Create(context.Background(), f.ticket))
	return f
}

func (f *attachmentFixture) upload(t *testing.T, name, mime, body string) *domain.Attachment {
	t.Helper()
	uploader := uuid.NewString()
	attachment, err := f.service.Upload(context.Background(), f.orgID, f.ticket.ID, &uploader,
		name, mime, int64(len(body)), strings.NewReader(body))
	require.NoError(t, err)
	return attachment
}

func TestUploadStoresBlobAndMetadata(t *testing.T) {
	f := newAttachmentFixture(t)

	attachment := f.upload(t, "Notes.TXT", "text/plain; charset=utf-8", "hello world")
	require.Equal(t, "Notes.TXT", attachment.FileName)
	require.Equal(t, "text/plain", attachment.MimeType)
	require.Equal(t, int64(len("hello world")), attachment.SizeBytes)
	require.True(t, strings.HasSuffix(attachment.StoredName, ".txt"))
	require.NotEqual(t, attachment.FileName, attachment.StoredName)
	require.True(t, f.store.has(attachment.StoredName))

	listed, err := f.service.List(context.Background(), f.orgID, f.ticket.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, attachment.ID, listed[0].ID)
}

func TestUploadValidation(t *testing.T) {
	f := newAttachmentFixture(t)
	ctx := context.Background()
	uploader := uuid.NewString()

	_, err := f.service.Upload(ctx, f.orgID, uuid.NewString(), &uploader,
		"a.txt", "text/plain", 4, strings.NewReader("data"))
	require.Equal(t, "NOT_FOUND", domainErr(t, err).Code)

	cases := []struct {
		name string
		mime string
		body string
		size int64
	}{
		{"empty file", "text/plain", "", 0},
		{"oversize file", "text/plain", strings.Repeat("x", 65), 65},
		{"forbidden type", "application/x-msdownload", "MZ", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Upload(ctx, f.orgID, f.ticket.ID, &uploader,
				"f.bin", tc.mime, tc.size, strings.NewReader(tc.body))
			require.Equal(t, "VALIDATION_FAILED", domainErr(t, err).Code)
		})
	}

	listed, err := f.service.List(ctx, f.orgID, f.ticket.ID)
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestOpenStreamsStoredBytes(t *testing.T) {
	f := newAttachmentFixture(t)
	ctx := context.Background()
	attachment := f.upload(t, "notes.txt", "text/plain", "file content")

	got, rc, err := f.service.Open(ctx, f.orgID, attachment.ID)
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, attachment.ID, got.ID)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "file content", string(data))

	_, _, err = f.service.Open(ctx, f.orgID, uuid.NewString())
	require.Equal(t, "NOT_FOUND", domainErr(t, err).Code)

	// attachments are tenant scoped
	_, _, err = f.service.Open(ctx, uuid.NewString(), attachment.ID)
	require.Equal(t, "NOT_FOUND", domainErr(t, err).Code)
}

func TestDeleteRemovesRowAndBlob(t *testing.T) {
	f := newAttachmentFixture(t)
	ctx := context.Background()
	attachment := f.upload(t, "notes.txt", "text/plain", "file content")

	require.NoError(t, f.service.Delete(ctx, f.orgID, attachment.ID))
	require.False(t, f.store.has(attachment.StoredName))

	err := f.service.Delete(ctx, f.orgID, attachment.ID)
	require.Equal(t, "NOT_FOUND", domainErr(t, err).Code)
}
