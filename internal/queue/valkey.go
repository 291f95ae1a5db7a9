package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/valkey-io/valkey-go"
)

const defaultQueueKey = "basalt:recompute"

// ValkeyQueue persists jobs in a Valkey list so recomputation survives
// restarts and can run on a separate instance.
type ValkeyQueue struct {
	client      valkey.Client
	queueKey    string
	handler     Handler
	stop        chan struct{}
	pollTimeout time.Duration
}

func NewValkeyQueue(client valkey.Client, queueKey string) *ValkeyQueue {
	if queueKey == "" {
		queueKey = defaultQueueKey
	}
	return &ValkeyQueue{
		client:      client,
		queueKey:    queueKey,
		stop:        make(chan struct{}),
		pollTimeout: 5 * time.Second,
	}
}

// SetHandler starts the worker loop that pops jobs and invokes the handler.
func (q *ValkeyQueue) SetHandler(handler Handler) {
	q.handler = handler
	if handler == nil {
		return
	}
	go q.consume()
}

func (q *ValkeyQueue) Enqueue(ctx context.Context, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	cmd := q.client.B().Lpush().Key(q.queueKey).Element(string(encoded)).Build()
	return q.client.Do(ctx, cmd).Error()
}

func (q *ValkeyQueue) Close() {
	close(q.stop)
}

func (q *ValkeyQueue) consume() {
	ctx := context.Background()
	for {
		select {
		case <-q.stop:
			return
		default:
		}

		resp := q.client.Do(ctx, q.client.B().Brpop().Key(q.queueKey).Timeout(q.pollTimeout.Seconds()).Build())
		values, err := resp.ToArray()
		if err != nil {
			if !valkey.IsValkeyNil(err) {
				log.Printf("queue: valkey pop failed: %v", err)
			}
			continue
		}
		if len(values) < 2 || q.handler == nil {
			continue
		}

		raw, err := values[1].ToString()
		if err != nil {
			log.Printf("queue: valkey payload decode failed: %v", err)
			continue
		}
		var job Job
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			log.Printf("queue: valkey job unmarshal failed: %v", err)
			continue
		}
		q.handler(ctx, job)
	}
}

var _ HandlerQueue = (*ValkeyQueue)(nil)
