package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/ledger"
	"github.com/sweetshop/inventory-service/internal/ledger/dto"
	"github.com/sweetshop/inventory-service/pkg/broker"
)

// StockListener consumes stock-change events published by upstream systems
// (point-of-sale feeds, warehouse tooling) and applies them through the same
// use case as the HTTP path.
type StockListener struct {
	consumer *broker.KafkaConsumer
	uc       ledger.UseCase
	logger   *zap.Logger
}

func NewStockListener(consumer *broker.KafkaConsumer, uc ledger.UseCase, logger *zap.Logger) *StockListener {
	return &StockListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("starting stock-events listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping stock-events listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type StockChangeRequestedEvent struct {
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	Payload   StockChangePayload `json:"payload"`
	Timestamp time.Time          `json:"timestamp"`
}

type StockChangePayload struct {
	ProductID string  `json:"product_id"`
	Type      string  `json:"type"`
	Quantity  int     `json:"quantity"`
	Reason    *string `json:"reason"`
	ActorID   string  `json:"actor_id"`
}

func (l *StockListener) processMessage(ctx context.Context, value []byte) {
	var event StockChangeRequestedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "StockChangeRequested" {
		return
	}

	input := &dto.StockChangeInput{
		ProductID:     event.Payload.ProductID,
		OperationType: event.Payload.Type,
		Quantity:      event.Payload.Quantity,
		Reason:        event.Payload.Reason,
		ActorID:       event.Payload.ActorID,
	}

	if _, err := l.uc.ApplyStockChange(ctx, input); err != nil {
		l.logger.Error("failed to apply stock change from event",
			zap.String("event_id", event.EventID),
			zap.String("product_id", event.Payload.ProductID),
			zap.Error(err),
		)
	}
}
