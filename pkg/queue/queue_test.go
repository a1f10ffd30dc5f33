package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID      string `json:"id"`
	Horizon int    `json:"horizon"`
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want payload
	}{
		{"raw message", json.RawMessage(`{"id":"a","horizon":7}`), payload{"a", 7}},
		{"bytes", []byte(`{"id":"b","horizon":1}`), payload{"b", 1}},
		{"map", map[string]interface{}{"id": "c", "horizon": 3}, payload{"c", 3}},
		{"value", payload{"d", 4}, payload{"d", 4}},
		{"pointer", &payload{"e", 5}, payload{"e", 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePayload[payload](tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParsePayloadErrors(t *testing.T) {
	_, err := ParsePayload[payload](42)
	assert.Error(t, err)

	_, err = ParsePayload[payload](json.RawMessage(`{"horizon":"x"}`))
	assert.Error(t, err)
}

func TestNewMessage(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	msg, err := NewMessage("m1", "forecast.batch", payload{"a", 2}, now)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","horizon":2}`, string(msg.Payload))

	b, err := json.Marshal(msg)
	require.NoError(t, err)
	var back Message
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "forecast.batch", back.Type)
	assert.JSONEq(t, `{"id":"a","horizon":2}`, string(back.Payload))

	_, err = NewMessage("m2", "t", json.RawMessage(`{broken`), now)
	assert.Error(t, err)
}

func TestRetryDecision(t *testing.T) {
	now := time.Unix(1000, 0)
	msg := Message{ID: "x", Attempts: 0}

	next, retry, at := retryDecision(msg, 2, 10*time.Second, now)
	assert.True(t, retry)
	assert.Equal(t, 1, next.Attempts)
	assert.Equal(t, now.Add(10*time.Second), at)

	next, retry, _ = retryDecision(Message{Attempts: 2}, 2, time.Second, now)
	assert.False(t, retry)
	assert.Equal(t, 2, next.Attempts)
}

func TestEnqueueRequiresRunningQueue(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	q := NewRedisQueue(nil, QueueConfig{}, client, ModeProducerConsumer, WithKeyPrefix("test:q"))
	err := q.Enqueue(context.Background(), "forecast.batch", payload{})
	assert.EqualError(t, err, "queue not running")
	assert.Equal(t, "test:q:messages", q.getQueueKey())
	assert.Equal(t, "test:q:retry", q.getRetryKey())
	assert.Equal(t, "test:q:dlq", q.getDeadLetterKey())
}

func TestProcessMessageRoutesToJob(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	q := NewRedisQueue(nil, QueueConfig{}, client, ModeConsumerOnly)
	var got json.RawMessage
	q.RegisterJob(JobFunc{JobName: "j", MsgType: "t", Fn: func(_ context.Context, p json.RawMessage) error {
		got = p
		return nil
	}})
	q.processMessage(Message{ID: "1", Type: "t", Payload: json.RawMessage(`{"id":"z"}`)})
	assert.JSONEq(t, `{"id":"z"}`, string(got))

	job, ok := q.lookup("t")
	require.True(t, ok)
	assert.Equal(t, "j", job.Name())
	assert.NoError(t, job.Handle(context.Background(), nil))
	_, ok = q.lookup("missing")
	assert.False(t, ok)
}
