package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinylink/internal/core/domain"
)

var dbSeq int

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	dbSeq++
	dsn := fmt.Sprintf("file:sqlitetest%d?mode=memory&cache=shared", dbSeq)
	repo, err := NewRepository(dsn)
	require.NoError(t, err)
	return repo
}

func TestCreateGetDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	link := &domain.Link{
		Code:      "abc123",
		TargetURL: "https://example.com",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, link))

	got, err := repo.GetByCode(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://example.com", got.TargetURL)
	assert.Zero(t, got.Clicks)
	assert.Nil(t, got.LastClicked)

	missing, err := repo.GetByCode(ctx, "nosuch1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := repo.Delete(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCreateDuplicateCode(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	link := &domain.Link{Code: "abc123", TargetURL: "https://example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, link))

	err := repo.Create(ctx, &domain.Link{Code: "abc123", TargetURL: "https://other.example.com", CreatedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestIncrementClicks(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	link := &domain.Link{Code: "abc123", TargetURL: "https://example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, link))

	now := time.Now().UTC()
	got, err := repo.IncrementClicks(ctx, "abc123", now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 1, got.Clicks)
	require.NotNil(t, got.LastClicked)

	got, err = repo.IncrementClicks(ctx, "abc123", now.Add(time.Second))
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Clicks)

	absent, err := repo.IncrementClicks(ctx, "nosuch1", now)
	require.NoError(t, err)
	assert.Nil(t, absent, "increment on a missing code is a no-op")
}

func TestListNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second).Add(-time.Hour)
	for i, code := range []string{"older1", "middle1", "newest1"} {
		err := repo.Create(ctx, &domain.Link{
			Code:      code,
			TargetURL: "https://example.com",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	links, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "newest1", links[0].Code)
	assert.Equal(t, "middle1", links[1].Code)
	assert.Equal(t, "older1", links[2].Code)
}

func TestPing(t *testing.T) {
	repo := newTestRepository(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
