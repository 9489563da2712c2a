package editor

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newIntegrationSession wires a Session to a real repository over an
// in-memory database.
func newIntegrationSession(t *testing.T) *Session {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Post{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	repo := repository.NewPostRepository(db)
	return NewSession(service.NewPostService(repo, nil))
}

func TestWorkflowLifecycle(t *testing.T) {
	s := newIntegrationSession(t)
	ctx := context.Background()

	require.NoError(t, s.Refresh(ctx))
	require.Empty(t, s.Posts())

	// Create through the workflow.
	s.StartCreate()
	s.SetTitle("My First Post")
	s.SetExcerpt("short")
	s.SetContent("long body")
	s.SetCategory(models.CategoryHistory)

	created, err := s.Submit(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "my-first-post", created.Slug)
	assert.False(t, created.PublishedAt.IsZero())

	posts := s.Posts()
	require.Len(t, posts, 1)

	// Edit it; only the changed fields should matter and the slug must
	// survive a retitle.
	s.StartEdit(posts[0])
	s.SetTitle("My First Post, Revised")

	updated, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My First Post, Revised", updated.Title)
	assert.Equal(t, "my-first-post", updated.Slug)
	assert.Equal(t, created.ID, updated.ID)

	// Two-phase delete, then the id is gone from a fresh listing.
	s.RequestDelete(created.ID)
	require.NoError(t, s.ConfirmDelete(ctx))

	require.NoError(t, s.Refresh(ctx))
	assert.Empty(t, s.Posts())
}

func TestWorkflowListOrdering(t *testing.T) {
	s := newIntegrationSession(t)
	ctx := context.Background()

	titles := []string{"Oldest", "Middle", "Newest"}
	for i, title := range titles {
		s.StartCreate()
		s.SetTitle(title)
		s.SetExcerpt("e")
		s.SetContent("c")
		_, err := s.Submit(ctx)
		require.NoError(t, err)
		// Distinct publish instants so the ordering is deterministic.
		if i < len(titles)-1 {
			time.Sleep(5 * time.Millisecond)
		}
	}

	require.NoError(t, s.Refresh(ctx))
	posts := s.Posts()
	require.Len(t, posts, 3)
	assert.Equal(t, "Newest", posts[0].Title)
	assert.Equal(t, "Middle", posts[1].Title)
	assert.Equal(t, "Oldest", posts[2].Title)
}

func TestWorkflowDeleteMissingPost(t *testing.T) {
	s := newIntegrationSession(t)
	ctx := context.Background()

	s.RequestDelete("4f5f2f9a-0000-0000-0000-000000000000")
	err := s.ConfirmDelete(ctx)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
