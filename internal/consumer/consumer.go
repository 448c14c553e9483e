package consumer

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// MessageHandler is implemented by consumers that process queue messages
type MessageHandler interface {
	HandleMessage(body []byte) error
}

// ProcessMessage runs one delivery through a handler and settles it: ACK on
// success, NACK without requeue on failure. Requeueing is deliberately off;
// a message that fails once will fail the same way again and the source event
// owner handles redelivery.
func ProcessMessage(logger *zap.Logger, queue string, msg amqp.Delivery, handler MessageHandler) {
	logger.Debug("Received message from queue",
		zap.String("queue", queue),
		zap.Uint64("delivery_tag", msg.DeliveryTag),
	)

	if err := handler.HandleMessage(msg.Body); err != nil {
		logger.Error("Failed to process message from queue",
			zap.String("queue", queue),
			zap.Uint64("delivery_tag", msg.DeliveryTag),
			zap.Error(err),
		)
		rejectMessage(logger, msg)
		return
	}

	if err := msg.Ack(false); err != nil {
		logger.Error("Failed to ack message from queue",
			zap.String("queue", queue),
			zap.Uint64("delivery_tag", msg.DeliveryTag),
			zap.Error(err),
		)
		rejectMessage(logger, msg)
		return
	}

	logger.Info("Message from queue processed successfully",
		zap.String("queue", queue),
		zap.Uint64("delivery_tag", msg.DeliveryTag),
	)
}

func rejectMessage(logger *zap.Logger, msg amqp.Delivery) {
	if err := msg.Nack(false, false); err != nil {
		logger.Error("Failed to nack a message",
			zap.Uint64("delivery_tag", msg.DeliveryTag),
			zap.Error(err),
		)
	}
}
