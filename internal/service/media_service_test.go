package service

import (
	"context"
	"strings"
	"testing"

	"github.com/maheshrc27/marketing-planner/internal/mocks"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type memoryStore struct {
	objects map[string]string
}

func (m *memoryStore) Upload(ctx context.Context, key string, file []byte, contentType string) error {
	m.objects[key] = contentType
	return nil
}

func (m *memoryStore) PublicURL(key string) string {
	return "https://media.example.com/" + key
}

func TestAttachMedia(t *testing.T) {
	f := newFixture()
	f.seedCalendar(t, "c1", "s1", samplePosts("p", models.PostStatusDraft)...)
	store := &memoryStore{objects: map[string]string{}}
	assets := mocks.NewMockMediaAssetRepository()
	links := mocks.NewMockPostMediaRepository()
	svc := NewMediaService(f.posts, f.calendars, assets, links, store)
	ctx := context.Background()

	got, err := svc.Attach(ctx, owner, "p-a", []Upload{{Name: "one.png", Data: pngHeader}, {Name: "two.png", Data: pngHeader}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "image/png", got[0].FileType)
	assert.True(t, strings.HasSuffix(got[0].FileName, ".png"))
	assert.Equal(t, "https://media.example.com/"+got[0].FileName, got[0].FileURL)
	assert.Len(t, store.objects, 2)

	_, err = svc.Attach(ctx, owner, "p-a", []Upload{{Name: "three.png", Data: pngHeader}})
	require.NoError(t, err)
	require.Len(t, links.Links, 3)
	assert.Equal(t, 2, links.Links[2].DisplayOrder)

	listed, err := svc.List(ctx, owner, "p-a")
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}

func TestAttachMediaRejects(t *testing.T) {
	f := newFixture()
	f.seedCalendar(t, "c1", "s1", samplePosts("p", models.PostStatusDraft)...)
	store := &memoryStore{objects: map[string]string{}}
	svc := NewMediaService(f.posts, f.calendars, mocks.NewMockMediaAssetRepository(), mocks.NewMockPostMediaRepository(), store)
	ctx := context.Background()

	_, err := svc.Attach(ctx, owner, "p-a", []Upload{{Name: "notes.txt", Data: []byte("plain text")}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Attach(ctx, owner, "p-a", []Upload{{Name: "anim.gif", Data: []byte("GIF89a\x01\x00\x01\x00")}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Attach(ctx, owner, "p-a", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Attach(ctx, "intruder", "p-a", []Upload{{Name: "one.png", Data: pngHeader}})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.List(ctx, owner, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, store.objects)
}
