package service

import (
	"context"
	"testing"
	"time"

	"ai-medassist-be/internal/constant"
	"ai-medassist-be/internal/dto"
	"ai-medassist-be/internal/model"
	"ai-medassist-be/internal/repository/unitofwork"
	"ai-medassist-be/pkg/retrieval"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDocumentService(t *testing.T) (IDocumentService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Document{}))

	uowFactory := unitofwork.NewRepositoryFactory(db)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisherService := NewPublisherService("TEST_AUDIT", pubSub)
	engine := retrieval.NewEngine(retrieval.NewSubstringScorer())

	return NewDocumentService(uowFactory, publisherService, engine, nil), db
}

func TestDocumentServiceIngest(t *testing.T) {
	svc, _ := setupDocumentService(t)
	ctx := context.Background()

	res, err := svc.Ingest(ctx, &dto.CreateDocumentRequest{
		Title:   "Asthma Basics",
		Content: "Asthma is a chronic inflammatory airway disease.",
	})
	require.NoError(t, err)
	assert.NotZero(t, res.Id)
	assert.Equal(t, "Asthma Basics", res.Title)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, constant.DefaultDocumentSource, listed[0].Source)
}

func TestDocumentServiceIngestKeepsExplicitSource(t *testing.T) {
	svc, _ := setupDocumentService(t)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, &dto.CreateDocumentRequest{
		Title:   "Sepsis Bundle",
		Content: "Administer broad-spectrum antibiotics within one hour.",
		Source:  "ICU Handbook",
	})
	require.NoError(t, err)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "ICU Handbook", listed[0].Source)
}

func TestDocumentServiceIngestRejectsBlankFields(t *testing.T) {
	svc, db := setupDocumentService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateDocumentRequest
	}{
		{name: "blank title", req: dto.CreateDocumentRequest{Title: "   ", Content: "body"}},
		{name: "blank content", req: dto.CreateDocumentRequest{Title: "Title", Content: "\t\n"}},
		{name: "both blank", req: dto.CreateDocumentRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Ingest(ctx, &tt.req)
			require.Error(t, err)
			var vErr *dto.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}

	// Rejected requests must not consume ids or leave rows behind.
	var count int64
	db.Model(&model.Document{}).Count(&count)
	assert.Zero(t, count)

	res, err := svc.Ingest(ctx, &dto.CreateDocumentRequest{Title: "First", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), res.Id)
}

func TestDocumentServiceListOrderAndShape(t *testing.T) {
	svc, db := setupDocumentService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&model.Document{Title: "Older", Content: "x", Source: "S", CreatedAt: base}).Error)
	require.NoError(t, db.Create(&model.Document{Title: "Newer", Content: "y", Source: "S", CreatedAt: base.Add(time.Minute)}).Error)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Newer", listed[0].Title)
	assert.Equal(t, "Older", listed[1].Title)
}

func TestDocumentServiceDeleteIdempotent(t *testing.T) {
	svc, _ := setupDocumentService(t)
	ctx := context.Background()

	res, err := svc.Ingest(ctx, &dto.CreateDocumentRequest{Title: "Gone Soon", Content: "body"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, res.Id))
	require.NoError(t, svc.Delete(ctx, res.Id))
	require.NoError(t, svc.Delete(ctx, 12345))

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestDocumentServiceSearch(t *testing.T) {
	svc, _ := setupDocumentService(t)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, &dto.CreateDocumentRequest{
		Title:   "Diabetes Care",
		Content: "Metformin and lifestyle changes for diabetes.",
	})
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, &dto.CreateDocumentRequest{
		Title:   "Fracture Care",
		Content: "Immobilize and refer to orthopedics.",
	})
	require.NoError(t, err)

	results, err := svc.Search(ctx, "metformin diabetes", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Diabetes Care", results[0].Title)
	assert.Equal(t, 2, results[0].Relevance)
}
