package service

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"ai-medassist-be/internal/constant"
	"ai-medassist-be/internal/dto"
	"ai-medassist-be/internal/model"
	"ai-medassist-be/internal/repository/memory"
	"ai-medassist-be/internal/repository/unitofwork"
	"ai-medassist-be/pkg/llm"
	"ai-medassist-be/pkg/rag/grounding"
	"ai-medassist-be/pkg/retrieval"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubLLM struct {
	reply   string
	err     error
	lastMsg []llm.Message
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.lastMsg = history
	return s.reply, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.reply, s.err
}

func setupAssistantService(t *testing.T, provider llm.LLMProvider) (IAssistantService, *gorm.DB) {
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
	enforcer := grounding.NewEnforcer(provider, "llava", log.New(os.Stderr, "", 0))
	conversationRepo := memory.NewConversationRepository()

	svc := NewAssistantService(uowFactory, publisherService, conversationRepo, engine, enforcer, nil)
	return svc, db
}

func seedDocument(t *testing.T, db *gorm.DB, title, content string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Document{
		Title:   title,
		Content: content,
		Source:  constant.DefaultDocumentSource,
	}).Error)
}

func TestAssistantQueryGroundedAnswer(t *testing.T) {
	stub := &stubLLM{reply: "Metformin is first line for type 2 diabetes."}
	svc, db := setupAssistantService(t, stub)
	seedDocument(t, db, "Diabetes Overview", "Metformin is the first-line treatment for type 2 diabetes.")

	res, err := svc.Query(context.Background(), &dto.QueryRequest{
		Question: "What is first line for diabetes?",
		Mode:     "doctor",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.SessionId)
	assert.False(t, res.Errored)
	assert.Equal(t, string(grounding.OutcomeGrounded), res.Outcome)
	assert.Equal(t, stub.reply, res.Text)

	// The retrieved document must have reached the model inside the envelope.
	last := stub.lastMsg[len(stub.lastMsg)-1]
	assert.Contains(t, last.Content, "Clinical Document 1: Diabetes Overview")
}

func TestAssistantQueryEmptyCorpusSendsNoContextSentinel(t *testing.T) {
	stub := &stubLLM{reply: constant.RefusalSentinel}
	svc, _ := setupAssistantService(t, stub)

	res, err := svc.Query(context.Background(), &dto.QueryRequest{
		Question: "Anything about diabetes?",
		Mode:     "patient",
	})
	require.NoError(t, err)

	last := stub.lastMsg[len(stub.lastMsg)-1]
	assert.Contains(t, last.Content, constant.NoContextSentinel)
	assert.Equal(t, string(grounding.OutcomeRefusal), res.Outcome)
	assert.Equal(t, constant.RefusalSentinel, res.Text)
}

func TestAssistantQueryRejectsUnknownMode(t *testing.T) {
	svc, _ := setupAssistantService(t, &stubLLM{reply: "ok"})

	_, err := svc.Query(context.Background(), &dto.QueryRequest{
		Question: "hello",
		Mode:     "veterinarian",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, grounding.ErrUnknownMode)
}

func TestAssistantQueryRejectsEmptyTurn(t *testing.T) {
	svc, _ := setupAssistantService(t, &stubLLM{reply: "ok"})

	_, err := svc.Query(context.Background(), &dto.QueryRequest{
		Question: "   ",
		Mode:     "patient",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyTurn)
}

func TestAssistantQueryImageOnlyTurnAllowed(t *testing.T) {
	stub := &stubLLM{reply: "The image shows mild joint swelling."}
	svc, db := setupAssistantService(t, stub)
	seedDocument(t, db, "Arthritis Notes", "Joint swelling patterns in rheumatoid arthritis.")

	res, err := svc.Query(context.Background(), &dto.QueryRequest{
		Mode:  "doctor",
		Image: &dto.ImagePayload{Data: "aGVsbG8=", MediaType: "image/png"},
	})
	require.NoError(t, err)
	assert.False(t, res.Errored)
	assert.Equal(t, string(grounding.OutcomeGrounded), res.Outcome)
}

func TestAssistantQueryModelFailure(t *testing.T) {
	stub := &stubLLM{err: errors.New("model unavailable")}
	svc, db := setupAssistantService(t, stub)
	seedDocument(t, db, "Doc", "Some content about hypertension.")

	res, err := svc.Query(context.Background(), &dto.QueryRequest{
		Question: "hypertension treatment?",
		Mode:     "patient",
	})
	require.NoError(t, err)
	assert.True(t, res.Errored)
	assert.Equal(t, constant.ModelFailureMessage, res.Text)
	assert.Empty(t, res.Outcome)
}

func TestAssistantSessionHistoryAccumulates(t *testing.T) {
	stub := &stubLLM{reply: "Answer one."}
	svc, db := setupAssistantService(t, stub)
	seedDocument(t, db, "Doc", "Content mentioning asthma management.")

	first, err := svc.Query(context.Background(), &dto.QueryRequest{
		Question: "asthma management?",
		Mode:     "doctor",
	})
	require.NoError(t, err)

	stub.reply = "Answer two."
	second, err := svc.Query(context.Background(), &dto.QueryRequest{
		SessionId: first.SessionId,
		Question:  "anything else about asthma?",
		Mode:      "doctor",
	})
	require.NoError(t, err)
	assert.Equal(t, first.SessionId, second.SessionId)

	// The second call must have carried the first exchange as history:
	// system + 2 history turns + envelope.
	require.Len(t, stub.lastMsg, 4)
	assert.Equal(t, "asthma management?", stub.lastMsg[1].Content)
	assert.Equal(t, "Answer one.", stub.lastMsg[2].Content)

	history, err := svc.GetHistory(context.Background(), first.SessionId)
	require.NoError(t, err)
	require.Len(t, history.Turns, 4)
	assert.Equal(t, constant.ChatMessageRoleUser, history.Turns[0].Role)
	assert.Equal(t, constant.ChatMessageRoleModel, history.Turns[1].Role)

	require.NoError(t, svc.DeleteSession(context.Background(), first.SessionId))
	cleared, err := svc.GetHistory(context.Background(), first.SessionId)
	require.NoError(t, err)
	assert.Empty(t, cleared.Turns)
}

func TestAssistantPatientModeDisclaimer(t *testing.T) {
	stub := &stubLLM{reply: "Drink fluids and rest."}
	svc, db := setupAssistantService(t, stub)
	seedDocument(t, db, "Common Cold", "Supportive care for viral upper respiratory infections.")

	res, err := svc.Query(context.Background(), &dto.QueryRequest{
		Question: "What helps with a cold?",
		Mode:     "patient",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Text, constant.PatientDisclaimer))
}
