package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-medassist-be/internal/constant"
	"ai-medassist-be/internal/dto"
	"ai-medassist-be/internal/repository/memory"
	"ai-medassist-be/internal/repository/unitofwork"
	"ai-medassist-be/pkg/events"
	"ai-medassist-be/pkg/llm"
	pktNats "ai-medassist-be/pkg/nats"
	"ai-medassist-be/pkg/rag/assembler"
	"ai-medassist-be/pkg/rag/grounding"
	"ai-medassist-be/pkg/retrieval"

	"github.com/google/uuid"
)

// ErrEmptyTurn rejects a turn that carries neither a question nor an image;
// there is nothing to ground.
var ErrEmptyTurn = errors.New("question is required when no image is attached")

type IAssistantService interface {
	Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
	GetHistory(ctx context.Context, sessionId uuid.UUID) (*dto.SessionHistoryResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
}

type assistantService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	conversationRepo *memory.ConversationRepository
	engine           *retrieval.Engine
	enforcer         *grounding.Enforcer
	eventPublisher   *pktNats.Publisher
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	conversationRepo *memory.ConversationRepository,
	engine *retrieval.Engine,
	enforcer *grounding.Enforcer,
	eventPublisher *pktNats.Publisher,
) IAssistantService {
	return &assistantService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		conversationRepo: conversationRepo,
		engine:           engine,
		enforcer:         enforcer,
		eventPublisher:   eventPublisher,
	}
}

// Query runs one full grounded turn: scan the corpus, rank it against the
// question, assemble the context block, and let the enforcer mediate the
// model call. The whole corpus is rescanned per turn; nothing from earlier
// turns influences retrieval.
func (s *assistantService) Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	mode, err := grounding.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	question := strings.TrimSpace(req.Question)
	if question == "" && req.Image == nil {
		return nil, ErrEmptyTurn
	}

	sessionId := req.SessionId
	if sessionId == uuid.Nil {
		sessionId = uuid.New()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	scored := s.engine.Retrieve(question, documents, constant.DefaultRetrievalK)
	contextBlock := assembler.Assemble(scored)

	history := s.loadHistory(sessionId)

	var images []string
	if req.Image != nil {
		images = []string{req.Image.Data}
	}

	result := s.enforcer.Answer(ctx, question, contextBlock, mode, images, history)

	now := time.Now()
	s.conversationRepo.Append(sessionId.String(),
		memory.Turn{Role: constant.ChatMessageRoleUser, Text: question, CreatedAt: now},
		memory.Turn{Role: constant.ChatMessageRoleModel, Text: result.Text, CreatedAt: now},
	)

	s.publishEvent(ctx, events.NewTurnAnswered(
		sessionId.String(), string(mode), string(result.Outcome), len(scored), result.Errored,
	))

	return &dto.QueryResponse{
		SessionId: sessionId,
		Text:      result.Text,
		Errored:   result.Errored,
		Outcome:   string(result.Outcome),
	}, nil
}

func (s *assistantService) GetHistory(ctx context.Context, sessionId uuid.UUID) (*dto.SessionHistoryResponse, error) {
	turns, _ := s.conversationRepo.Get(sessionId.String())

	response := &dto.SessionHistoryResponse{
		SessionId: sessionId,
		Turns:     make([]dto.ChatTurnResponse, 0, len(turns)),
	}
	for _, t := range turns {
		response.Turns = append(response.Turns, dto.ChatTurnResponse{
			Role:      t.Role,
			Text:      t.Text,
			CreatedAt: t.CreatedAt,
		})
	}
	return response, nil
}

func (s *assistantService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	s.conversationRepo.Delete(sessionId.String())
	return nil
}

// loadHistory converts stored turns into model messages. History is
// presentation context only; grounding always comes from the fresh
// context block.
func (s *assistantService) loadHistory(sessionId uuid.UUID) []llm.Message {
	turns, found := s.conversationRepo.Get(sessionId.String())
	if !found {
		return nil
	}
	messages := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Text})
	}
	return messages
}

func (s *assistantService) publishEvent(ctx context.Context, evt events.BaseEvent) {
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), err)
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event to NATS: %v\n", evt.EventType(), err)
		}
	}
}
