package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Domenick1991/airtickets/config"
	"github.com/Domenick1991/airtickets/internal/kafka"
)

// The worker tails the notifications topic and writes the audit trail for
// every mail the backend sent.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.NotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Warn("decode event failed", zap.Error(err))
			return nil
		}
		logger.Info("notification delivered",
			zap.String("type", event.Type),
			zap.String("email", event.Email),
			zap.Int64("flight_id", event.FlightID),
			zap.String("receipt_id", event.ReceiptID),
			zap.Time("at", event.At))
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", zap.Error(err))
	}
}
