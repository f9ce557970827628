package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/pkg/logger"
	"ai-medassist-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains corpus events off the in-process bus and writes
// them to the audit trail. Audit writes happen off the request path so a
// slow insert never delays an ingest or a query turn.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	sysLogger  logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		sysLogger:  sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.sysLogger.Error("audit-consumer", "Failed to unmarshal audit event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	auditLog := entity.AuditLog{
		Id:        uuid.New(),
		Action:    envelope.Type,
		Details:   envelope.Data,
		CreatedAt: time.Now(),
	}

	if err := uow.AuditLogRepository().Create(ctx, &auditLog); err != nil {
		cs.sysLogger.Error("audit-consumer", "Failed to write audit log", map[string]interface{}{
			"action": envelope.Type,
			"error":  err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
