package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fathima-sithara/asset-service/internal/models"
	"github.com/fathima-sithara/asset-service/internal/repository"
)

type fakeStore struct {
	uploads  map[string][]byte
	deleted  []string
	presigns int
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploads: map[string][]byte{}}
}

func (f *fakeStore) Upload(_ context.Context, key, _ string, data []byte) error {
	f.uploads[key] = data
	return nil
}

func (f *fakeStore) PresignURL(_ context.Context, key string, _ time.Duration) (string, error) {
	f.presigns++
	return "https://signed.example.com/" + key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type memCache struct {
	data map[string]string
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.data[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key, val string, _ time.Duration) error {
	c.data[key] = val
	return nil
}

type fixture struct {
	svc   *AssetService
	logs  *repository.MemoryLogRepo
	infos *repository.MemoryInfoRepo
	store *fakeStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zap.NewNop().Sugar()
	assets := repository.NewMemoryAssetRepository()
	infos := repository.NewMemoryInfoRepository()
	logs := repository.NewMemoryLogRepository()
	store := newFakeStore()
	activity := NewActivity(logs, nil, log)
	svc := NewAssetService(assets, infos, store, &memCache{data: map[string]string{}}, activity, 10*time.Minute, log)
	return &fixture{svc: svc, logs: logs, infos: infos, store: store}
}

func TestCreate_RequiresNameAndCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, in := range []CreateAssetInput{
		{Name: "", Category: "tools"},
		{Name: "Drill", Category: ""},
		{Name: "   ", Category: "tools"},
		{},
	} {
		_, err := f.svc.Create(ctx, "u1", in)
		require.ErrorIs(t, err, ErrInvalidInput)
	}

	// nothing persisted
	assets, err := f.svc.List(ctx, "u1", ListFilter{})
	require.NoError(t, err)
	require.Empty(t, assets)
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Drill", Category: "tools"})
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)
	require.Equal(t, "u1", a.OwnerID)
	require.False(t, a.CreatedAt.IsZero())
	require.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestOwnerIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Drill", Category: "tools"})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, "u2", a.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	name := "Hammer"
	_, err = f.svc.Update(ctx, "u2", a.ID, AssetPatch{Name: &name})
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, f.svc.Delete(ctx, "u2", a.ID), repository.ErrNotFound)

	others, err := f.svc.List(ctx, "u2", ListFilter{})
	require.NoError(t, err)
	require.Empty(t, others)

	// still intact for the owner
	got, err := f.svc.Get(ctx, "u1", a.ID)
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
}

func TestUpdate_PartialFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Drill", Description: "cordless", Category: "tools"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	desc := "corded"
	got, err := f.svc.Update(ctx, "u1", a.ID, AssetPatch{Description: &desc})
	require.NoError(t, err)

	require.Equal(t, "Drill", got.Name)
	require.Equal(t, "tools", got.Category)
	require.Equal(t, "corded", got.Description)
	require.Equal(t, a.CreatedAt, got.CreatedAt)
	require.True(t, got.UpdatedAt.After(a.UpdatedAt))
}

func TestUpdate_RejectsEmptyRequiredFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Drill", Category: "tools"})
	require.NoError(t, err)

	empty := ""
	_, err = f.svc.Update(ctx, "u1", a.ID, AssetPatch{Name: &empty})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.svc.Update(ctx, "u1", a.ID, AssetPatch{Category: &empty})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_ThenGetReportsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Drill", Category: "tools"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, "u1", a.ID))
	_, err = f.svc.Get(ctx, "u1", a.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestList_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Pipe Wrench", Category: "tools"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Ladder", Description: "next to the wrenches", Category: "tools"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Desk", Category: "furniture"})
	require.NoError(t, err)

	byCategory, err := f.svc.List(ctx, "u1", ListFilter{Category: "tools"})
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	for _, a := range byCategory {
		require.Equal(t, "tools", a.Category)
	}

	bySearch, err := f.svc.List(ctx, "u1", ListFilter{Search: "WRENCH"})
	require.NoError(t, err)
	require.Len(t, bySearch, 2) // name match and description match

	both, err := f.svc.List(ctx, "u1", ListFilter{Category: "furniture", Search: "wrench"})
	require.NoError(t, err)
	require.Empty(t, both)
}

func TestList_OrderIsCreationAscending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: fmt.Sprintf("a%d", i), Category: "c"})
		require.NoError(t, err)
	}
	assets, err := f.svc.List(ctx, "u1", ListFilter{})
	require.NoError(t, err)
	require.Len(t, assets, 3)
	require.Equal(t, "a0", assets[0].Name)
	require.Equal(t, "a2", assets[2].Name)
}

func TestList_StatusViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	noInfo, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "no-info", Category: "c"})
	require.NoError(t, err)
	act, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "active", Category: "c"})
	require.NoError(t, err)
	inact, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "inactive", Category: "c"})
	require.NoError(t, err)

	require.NoError(t, f.infos.Insert(ctx, &models.AssetInfo{ID: "i1", AssetID: act.ID, Status: models.StatusActive, OwnerID: "u1"}))
	require.NoError(t, f.infos.Insert(ctx, &models.AssetInfo{ID: "i2", AssetID: inact.ID, Status: models.StatusInactive, OwnerID: "u1"}))

	active, err := f.svc.List(ctx, "u1", ListFilter{Status: "active"})
	require.NoError(t, err)
	require.Len(t, active, 2) // asset with no info classifies active
	require.Equal(t, noInfo.ID, active[0].ID)

	inactive, err := f.svc.List(ctx, "u1", ListFilter{Status: "inactive"})
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	require.Equal(t, inact.ID, inactive[0].ID)

	_, err = f.svc.List(ctx, "u1", ListFilter{Status: "bogus"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestActivityLog_RecordsLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Drill", Category: "tools"})
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, "u1", a.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, "u1", a.ID))

	logs, err := f.logs.ListByAssetID(ctx, "u1", a.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	require.Equal(t, models.ActionCreated, logs[0].Action)
	require.Equal(t, models.ActionViewed, logs[1].Action)
	require.Equal(t, models.ActionDeleted, logs[2].Action)
}

func TestImageURL_PresignsAndCaches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Drill", Category: "tools", ImageURL: "assets/x/drill.png"})
	require.NoError(t, err)

	url, err := f.svc.ImageURL(ctx, "u1", a.ID)
	require.NoError(t, err)
	require.Equal(t, "https://signed.example.com/assets/x/drill.png", url)
	require.Equal(t, 1, f.store.presigns)

	// second lookup hits the cache
	url2, err := f.svc.ImageURL(ctx, "u1", a.ID)
	require.NoError(t, err)
	require.Equal(t, url, url2)
	require.Equal(t, 1, f.store.presigns)
}

func TestImageURL_NoImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Drill", Category: "tools"})
	require.NoError(t, err)

	_, err = f.svc.ImageURL(ctx, "u1", a.ID)
	require.ErrorIs(t, err, ErrNoImage)
}

func TestAttachImage_StoresKeyNotURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Drill", Category: "tools"})
	require.NoError(t, err)

	got, err := f.svc.AttachImage(ctx, "u1", a.ID, "drill.bin", "application/octet-stream", []byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, "assets/"+a.ID+"/drill.bin", got.ImageURL)
	require.Contains(t, f.store.uploads, got.ImageURL)
}

func TestDelete_RemovesStoredImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, "u1", CreateAssetInput{Name: "Drill", Category: "tools"})
	require.NoError(t, err)
	got, err := f.svc.AttachImage(ctx, "u1", a.ID, "drill.bin", "application/octet-stream", []byte{1})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, "u1", a.ID))
	require.Contains(t, f.store.deleted, got.ImageURL)
}
