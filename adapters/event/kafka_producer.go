package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/clipstream/clipsearch/internal/config"
	"github.com/clipstream/clipsearch/pkg/logger"
)

const TopicSearchQueries = "search.queries"

// SearchEventPayload is the analytics record published for every completed
// search pass. The worker folds these into the trending-queries leaderboard.
type SearchEventPayload struct {
	Query       string    `json:"query"`
	Source      string    `json:"source"`
	ResultCount int       `json:"result_count"`
	SearchedAt  time.Time `json:"searched_at"`
}

type KafkaProducerClient struct {
	searchQueriesWriter *kafka.Writer
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicSearchQueries,
		Balancer: &kafka.LeastBytes{},
	}

	log.Info("Initialized Kafka search-queries producer.")
	return &KafkaProducerClient{searchQueriesWriter: writer, logger: log}, nil
}

// RecordSearch publishes asynchronously; search latency never waits on the
// broker and a publish failure is only logged.
func (c *KafkaProducerClient) RecordSearch(ctx context.Context, query, source string, resultCount int) {
	payload := SearchEventPayload{
		Query:       query,
		Source:      source,
		ResultCount: resultCount,
		SearchedAt:  time.Now().UTC(),
	}

	go func() {
		value, err := json.Marshal(payload)
		if err != nil {
			c.logger.Error("Failed to marshal search event", err)
			return
		}

		publishCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err = c.searchQueriesWriter.WriteMessages(publishCtx, kafka.Message{
			Key:   []byte(source),
			Value: value,
		})
		if err != nil {
			c.logger.Error("Failed to publish search event", err)
		}
	}()
}

func (c *KafkaProducerClient) Close() {
	if c.searchQueriesWriter != nil {
		c.searchQueriesWriter.Close()
	}
}
