package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/gilded-rose/internal/core/domain"
)

const reportChannelPrefix = "reports:"

// ReportMessage is the payload published for every simulated day.
type ReportMessage struct {
	SimulationID string        `json:"simulation_id"`
	Report       domain.Report `json:"report"`
	Text         string        `json:"text"`
}

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func ReportChannel(simulationID string) string {
	return reportChannelPrefix + simulationID
}

// PublishReport uses pub/sub only; nothing is stored in Redis.
func (r *RedisAdapter) PublishReport(ctx context.Context, simulationID string, report domain.Report) error {
	payload, err := json.Marshal(ReportMessage{
		SimulationID: simulationID,
		Report:       report,
		Text:         report.String(),
	})
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return r.client.Publish(ctx, ReportChannel(simulationID), payload).Err()
}

// Subscribe follows one simulation's reports until ctx is done.
func (r *RedisAdapter) Subscribe(ctx context.Context, simulationID string) (<-chan ReportMessage, error) {
	sub := r.client.Subscribe(ctx, ReportChannel(simulationID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan ReportMessage)
	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var m ReportMessage
				if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
					continue
				}
				select {
				case out <- m:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
