package implementation

import (
	"context"
	"testing"
	"time"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/model"
	"ai-medassist-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Document{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM documents")
	})
	return db
}

func TestDocumentRepositoryCreateAssignsSequentialIds(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	first := &entity.Document{Title: "A", Content: "alpha", Source: "Uploaded File", CreatedAt: time.Now()}
	second := &entity.Document{Title: "B", Content: "beta", Source: "Uploaded File", CreatedAt: time.Now()}

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.NotZero(t, first.Id)
	assert.Equal(t, first.Id+1, second.Id)
}

func TestDocumentRepositoryDeleteIsIdempotentAndNeverReusesIds(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	doc := &entity.Document{Title: "Ephemeral", Content: "body", Source: "Uploaded File", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, doc))
	deletedId := doc.Id

	require.NoError(t, repo.Delete(ctx, deletedId))
	// Deleting again, and deleting an id that never existed, must both succeed.
	require.NoError(t, repo.Delete(ctx, deletedId))
	require.NoError(t, repo.Delete(ctx, 99999))

	found, err := repo.FindOne(ctx, specification.ByID{ID: deletedId})
	require.NoError(t, err)
	assert.Nil(t, found)

	// A later insert must get a fresh id, not the freed one.
	next := &entity.Document{Title: "Successor", Content: "body", Source: "Uploaded File", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, next))
	assert.Greater(t, next.Id, deletedId)
}

func TestDocumentRepositoryFindAllByRecency(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	old := &entity.Document{Title: "Old", Content: "old body", Source: "Uploaded File", CreatedAt: base}
	fresh := &entity.Document{Title: "Fresh", Content: "fresh body", Source: "Uploaded File", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, fresh))

	docs, err := repo.FindAll(ctx, specification.MetadataOnly{}, specification.OrderByRecency{})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "Fresh", docs[0].Title)
	assert.Equal(t, "Old", docs[1].Title)
	// MetadataOnly must leave content unselected.
	assert.Empty(t, docs[0].Content)
	assert.Empty(t, docs[1].Content)
}

func TestDocumentRepositoryFindOneMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)

	found, err := repo.FindOne(context.Background(), specification.ByID{ID: 42})
	require.NoError(t, err)
	assert.Nil(t, found)
}
