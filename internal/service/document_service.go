package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-medassist-be/internal/constant"
	"ai-medassist-be/internal/dto"
	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/repository/specification"
	"ai-medassist-be/internal/repository/unitofwork"
	"ai-medassist-be/pkg/events"
	pktNats "ai-medassist-be/pkg/nats"
	"ai-medassist-be/pkg/retrieval"
)

type IDocumentService interface {
	Ingest(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	List(ctx context.Context) ([]*dto.DocumentMetadataResponse, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, k int) ([]*dto.SearchDocumentResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	engine           *retrieval.Engine
	eventPublisher   *pktNats.Publisher
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	engine *retrieval.Engine,
	eventPublisher *pktNats.Publisher,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		engine:           engine,
		eventPublisher:   eventPublisher,
	}
}

// Ingest validates before touching the store, so a rejected request never
// consumes an id and leaves the corpus exactly as it was.
func (s *documentService) Ingest(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &dto.ValidationError{Field: "title"}
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, &dto.ValidationError{Field: "content"}
	}

	source := req.Source
	if source == "" {
		source = constant.DefaultDocumentSource
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	document := entity.Document{
		Title:     req.Title,
		Content:   req.Content,
		Source:    source,
		CreatedAt: time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewDocumentIngested(document.Id, document.Title, document.Source))

	return &dto.CreateDocumentResponse{
		Id:    document.Id,
		Title: document.Title,
	}, nil
}

func (s *documentService) List(ctx context.Context) ([]*dto.DocumentMetadataResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.MetadataOnly{},
		specification.OrderByRecency{},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentMetadataResponse, 0, len(documents))
	for _, doc := range documents {
		result = append(result, &dto.DocumentMetadataResponse{
			Id:        doc.Id,
			Title:     doc.Title,
			Source:    doc.Source,
			CreatedAt: doc.CreatedAt,
		})
	}
	return result, nil
}

func (s *documentService) Delete(ctx context.Context, id uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, events.NewDocumentDeleted(id))
	return nil
}

// Search runs the same ranking the assistant uses, exposed as a standalone
// surface for corpus inspection.
func (s *documentService) Search(ctx context.Context, query string, k int) ([]*dto.SearchDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	scored := s.engine.Retrieve(query, documents, k)

	result := make([]*dto.SearchDocumentResponse, 0, len(scored))
	for _, sd := range scored {
		result = append(result, &dto.SearchDocumentResponse{
			Id:        sd.Document.Id,
			Title:     sd.Document.Title,
			Source:    sd.Document.Source,
			Relevance: sd.Relevance,
		})
	}
	return result, nil
}

// publishEvent fans a corpus event out to the audit consumer and, when
// configured, the external bus. Neither failure fails the request.
func (s *documentService) publishEvent(ctx context.Context, evt events.BaseEvent) {
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), err)
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event to NATS: %v\n", evt.EventType(), err)
		}
	}
}
