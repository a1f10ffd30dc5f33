package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	domrepo "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/repository"
	icache "github.com/elysenoe925-creator/NTS-PROJECT/internal/service/cache"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/queue"
)

// ForecastJobType is the queue message type of an asynchronous batch.
const ForecastJobType = "forecast.batch"

// ErrNotFound is returned while a job result is absent or expired.
var ErrNotFound = errors.New("job result not found")

func jobResultKey(id string) string {
	return icache.GenerateKey("forecast:job", id)
}

// ForecastJob runs queued batches and stores their outcome for polling.
type ForecastJob struct {
	batch   *BatchForecaster
	results icache.BytesCache
	ttl     time.Duration
	now     func() time.Time
}

func NewForecastJob(batch *BatchForecaster, results icache.BytesCache, ttl time.Duration) *ForecastJob {
	return &ForecastJob{batch: batch, results: results, ttl: ttl, now: time.Now}
}

func (j *ForecastJob) Name() string { return "forecast-batch" }
func (j *ForecastJob) Type() string { return ForecastJobType }

func (j *ForecastJob) Handle(ctx context.Context, payload json.RawMessage) error {
	env, err := queue.ParsePayload[models.BatchEnvelope](payload)
	if err != nil {
		return err
	}
	if env.ID == "" {
		return fmt.Errorf("job payload without id")
	}

	res, err := j.batch.RunRaw(ctx, "queue", &env.RawForecastRequest)
	if err != nil {
		return err
	}
	out := models.BatchOutcome{ID: env.ID, Results: res, ComputedAt: j.now().UTC()}
	if err := icache.StoreJSON(j.results, jobResultKey(env.ID), out, j.ttl); err != nil {
		return fmt.Errorf("store job result %s: %w", env.ID, err)
	}
	return nil
}

var _ queue.Job = (*ForecastJob)(nil)

// JobService enqueues batches and looks up their results.
type JobService struct {
	queue   domrepo.JobQueue
	results icache.BytesCache
	newID   func() string
}

func NewJobService(q domrepo.JobQueue, results icache.BytesCache) *JobService {
	return &JobService{queue: q, results: results, newID: uuid.NewString}
}

// Enqueue assigns a job id and queues the request.
func (s *JobService) Enqueue(ctx context.Context, raw *models.RawForecastRequest) (string, error) {
	env := models.BatchEnvelope{ID: s.newID(), RawForecastRequest: *raw}
	if err := s.queue.Enqueue(ctx, ForecastJobType, env); err != nil {
		return "", fmt.Errorf("enqueue job: %w", err)
	}
	return env.ID, nil
}

// Result returns ErrNotFound until the job has been computed.
func (s *JobService) Result(ctx context.Context, id string) (*models.BatchOutcome, error) {
	var out models.BatchOutcome
	err := icache.LoadJSON(s.results, jobResultKey(id), &out)
	if errors.Is(err, icache.ErrCacheMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load job result %s: %w", id, err)
	}
	return &out, nil
}
