package seed

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func TestSeedFixtures(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{ShouldClean: true}))

	var posts []models.Post
	require.NoError(t, db.Order("published_at DESC").Find(&posts).Error)
	require.Len(t, posts, 6)

	// Newest first, store-owned fields assigned.
	assert.Equal(t, "evolution-of-web-design", posts[0].Slug)
	assert.Equal(t, "ai-everyday-technology", posts[5].Slug)
	for _, p := range posts {
		assert.NotEmpty(t, p.ID)
		assert.True(t, p.Category.Valid())
		assert.Positive(t, p.ReadTime)
	}
}

func TestSeedIsIdempotentForFixtures(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{ShouldClean: true}))
	require.NoError(t, Seed(db, Options{}))

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)
}

func TestSeedGeneratedPosts(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{ShouldClean: true, NumExtraPosts: 10}))

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(16), count)
}
