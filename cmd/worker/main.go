package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/clipstream/clipsearch/adapters/event"
	"github.com/clipstream/clipsearch/adapters/persistence"
	trendingUC "github.com/clipstream/clipsearch/internal/application/usecase/trending"
	"github.com/clipstream/clipsearch/internal/config"
	"github.com/clipstream/clipsearch/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting clipsearch analytics worker...")

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	statsRepo := persistence.NewRedisQueryStatsRepo(redisClient, appLogger)
	recordQueryUseCase := trendingUC.NewRecordQueryUseCase(statsRepo, appLogger)

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicSearchQueries,
		GroupID:  "search-analytics-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicSearchQueries))

	ctx := context.Background()
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.SearchEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal search event, skipping", err)
			commitMessage(consumer, msg, appLogger)
			continue
		}

		if err := recordQueryUseCase.Execute(ctx, payload.Query); err != nil {
			appLogger.Error("Failed to record search query", err, zap.String("query", payload.Query))
			continue
		}

		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
