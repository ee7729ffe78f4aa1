package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisSendTimeout bounds a single publish; sends in the normal path are
// treated as fast, non-cancellable calls.
const redisSendTimeout = 5 * time.Second

// RedisTransport emits signals as JSON envelopes published on
// per-recipient pub/sub channels. Recipient addresses are channel names
// derived from the service name under a fixed prefix, so a subscriber
// listens only to its own channel.
type RedisTransport struct {
	client *redis.Client
	prefix string
}

// NewRedisTransport wraps an established Redis client. channelPrefix
// namespaces the signal channels (for example "sessiond:").
func NewRedisTransport(client *redis.Client, channelPrefix string) *RedisTransport {
	return &RedisTransport{client: client, prefix: channelPrefix}
}

// signalEnvelope is the published wire form of one signal.
type signalEnvelope struct {
	Signal string         `json:"signal"`
	Fields map[string]any `json:"fields"`
}

// ResolveAddress maps a service name onto its signal channel. There is no
// ownership lookup to perform: the channel exists implicitly and delivery
// to a channel with no subscriber is silently dropped, consistent with
// best-effort signal semantics.
func (t *RedisTransport) ResolveAddress(serviceName string) (string, error) {
	return t.prefix + serviceName, nil
}

// SendPointToPoint publishes one signal on the recipient's channel.
func (t *RedisTransport) SendPointToPoint(recipient, signalName string, payload Payload) error {
	data, err := json.Marshal(signalEnvelope{Signal: signalName, Fields: payload.Map()})
	if err != nil {
		return fmt.Errorf("marshalling %s payload: %w", signalName, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisSendTimeout)
	defer cancel()
	if err := t.client.Publish(ctx, recipient, data).Err(); err != nil {
		return fmt.Errorf("publishing %s to %s: %w", signalName, recipient, err)
	}
	return nil
}

// Close releases the underlying Redis client.
func (t *RedisTransport) Close() error {
	return t.client.Close()
}
