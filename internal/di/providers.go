package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/repository"
	"github.com/elysenoe925-creator/NTS-PROJECT/internal/handler/api"
	"github.com/elysenoe925-creator/NTS-PROJECT/internal/handler/stdio"
	internalrepo "github.com/elysenoe925-creator/NTS-PROJECT/internal/repository"
	icache "github.com/elysenoe925-creator/NTS-PROJECT/internal/service/cache"
	"github.com/elysenoe925-creator/NTS-PROJECT/internal/service/ratelimit"
	"github.com/elysenoe925-creator/NTS-PROJECT/internal/services/forecast"
	"github.com/elysenoe925-creator/NTS-PROJECT/internal/usecase"
	pkgch "github.com/elysenoe925-creator/NTS-PROJECT/pkg/clickhouse"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/config"
	xhttp "github.com/elysenoe925-creator/NTS-PROJECT/pkg/http"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/http/middleware"
	pkgkafka "github.com/elysenoe925-creator/NTS-PROJECT/pkg/kafka"
	applogger "github.com/elysenoe925-creator/NTS-PROJECT/pkg/logger"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/metrics"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/queue"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
}

// ProvideRegistry creates the process registry with Go and process collectors.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideRedisClient returns nil when Redis is disabled.
func ProvideRedisClient(cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// ProvideClickHouseClient returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	if cfg.ClickHouse.InitSchema {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.InitSchema(ctx, internalrepo.SalesSchema(cfg.ClickHouse.Database, cfg.ClickHouse.SalesTable)); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
	}
	return client, nil
}

// ProvideKafkaProducer returns nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithProducerRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideResultCache prefers Redis behind a local layer so every replica
// shares cached batches.
func ProvideResultCache(cfg *config.Config, rc *redis.Client) icache.BytesCache {
	if rc != nil {
		return icache.NewLayeredCache(icache.NewRedisCache(rc, cfg.Redis.KeyPrefix), cfg.Forecast.CacheEntries, 30*time.Second)
	}
	return icache.NewTTLCache(cfg.Forecast.CacheEntries)
}

// ProvideBatchForecaster creates the batch driver shared by every transport.
func ProvideBatchForecaster(cfg *config.Config, m repository.Metrics, c icache.BytesCache) *usecase.BatchForecaster {
	opts := []usecase.BatchOption{
		usecase.WithWorkers(cfg.Forecast.Workers),
		usecase.WithDefaultHorizon(cfg.Forecast.DefaultHorizon),
	}
	if cfg.Forecast.CacheTTL > 0 {
		opts = append(opts, usecase.WithResultCache(c, cfg.Forecast.CacheTTL))
	}
	return usecase.NewBatchForecaster(forecast.NewTrendForecaster(), forecast.NewVolatilityScorer(), m, opts...)
}

// ProvideSalesStore returns nil without ClickHouse.
func ProvideSalesStore(cfg *config.Config, ch *pkgch.Client, l *applogger.Logger) *internalrepo.CHSalesStore {
	if ch == nil {
		return nil
	}
	table := cfg.ClickHouse.Database + "." + cfg.ClickHouse.SalesTable
	return internalrepo.NewCHSalesStore(ch, table, l.With(applogger.String("component", "sales_store")))
}

func ProvideSKUForecaster(store *internalrepo.CHSalesStore, batch *usecase.BatchForecaster, m repository.Metrics) *usecase.SKUForecaster {
	if store == nil {
		return nil
	}
	return usecase.NewSKUForecaster(store, batch, m)
}

// ProvideJobQueue returns nil without Redis. The queue runs both roles so one
// process can accept and compute jobs.
func ProvideJobQueue(cfg *config.Config, rc *redis.Client, l *applogger.Logger, batch *usecase.BatchForecaster) *queue.RedisQueue {
	if rc == nil {
		return nil
	}
	q := queue.NewRedisQueue(l.With(applogger.String("component", "queue")), queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, rc, queue.ModeProducerConsumer, queue.WithKeyPrefix(cfg.Redis.KeyPrefix+":queue"))
	q.RegisterJob(usecase.NewForecastJob(batch, icache.NewRedisCache(rc, cfg.Redis.KeyPrefix), cfg.Queue.ResultTTL))
	return q
}

func ProvideJobService(cfg *config.Config, q *queue.RedisQueue, rc *redis.Client) *usecase.JobService {
	if q == nil {
		return nil
	}
	return usecase.NewJobService(q, icache.NewRedisCache(rc, cfg.Redis.KeyPrefix))
}

// ProvideRateLimiter returns nil when rate limiting is disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.Burst, cfg.RateLimit.RPS)
}

// ProvideHTTPHandler wires the optional routes and health checks.
func ProvideHTTPHandler(
	l *applogger.Logger,
	batch *usecase.BatchForecaster,
	sku *usecase.SKUForecaster,
	jobs *usecase.JobService,
	lim *ratelimit.Limiter,
	rc *redis.Client,
	ch *pkgch.Client,
) *api.ForecastEchoHandler {
	opts := []api.HandlerOption{}
	if sku != nil {
		opts = append(opts, api.WithSKUForecaster(sku))
	}
	if jobs != nil {
		opts = append(opts, api.WithJobs(jobs))
	}
	if lim != nil {
		opts = append(opts, api.WithAPIMiddleware(middleware.RateLimit(lim)))
	}
	if rc != nil {
		opts = append(opts, api.WithHealthCheck("redis", func(ctx context.Context) error { return rc.Ping(ctx).Err() }))
	}
	if ch != nil {
		opts = append(opts, api.WithHealthCheck("clickhouse", ch.Health))
	}
	return api.NewForecastEchoHandler(l.With(applogger.String("component", "http")), batch, opts...)
}

func ProvideHTTPServer(cfg *config.Config, h *api.ForecastEchoHandler, reg *prometheus.Registry, l *applogger.Logger) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithBodyLimit(cfg.Server.BodyLimit),
		xhttp.WithCORS(cfg.Server.AllowOrigins),
		xhttp.WithLogger(l),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path, reg, reg))
	}
	return xhttp.NewServer(h, opts...)
}

// ProvideKafkaConsumer returns nil when Kafka is disabled. Sales ingest is
// registered only when ClickHouse can store the events.
func ProvideKafkaConsumer(
	cfg *config.Config,
	reg *prometheus.Registry,
	l *applogger.Logger,
	batch *usecase.BatchForecaster,
	producer *pkgkafka.Producer,
	store *internalrepo.CHSalesStore,
	m repository.Metrics,
) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	cl := l.With(applogger.String("component", "kafka_consumer"))
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
		pkgkafka.WithConsumerLogger(cl),
		pkgkafka.WithConsumerRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.NewHookChain(pkgkafka.TraceHook(), pkgkafka.LoggingHook(cl)))

	pub := internalrepo.NewKafkaResultPublisher(producer, cfg.Kafka.ResultsTopic)
	consumer.RegisterHandler(usecase.NewKafkaForecastHandler(cfg.Kafka.RequestsTopic, batch, pub, m))
	if store != nil {
		consumer.RegisterHandler(usecase.NewKafkaSalesHandler(cfg.Kafka.SalesTopic, store, m, cl))
	}
	return consumer, nil
}

// ProvideApp collects the started components and the clients to close.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	consumer *pkgkafka.Consumer,
	q *queue.RedisQueue,
	lim *ratelimit.Limiter,
	producer *pkgkafka.Producer,
	rc *redis.Client,
	ch *pkgch.Client,
) *server.App {
	c := server.Components{HTTP: srv, Consumer: consumer, Queue: q, Closers: map[string]io.Closer{}}
	if lim != nil {
		c.Limiter = lim
	}
	if producer != nil {
		c.Closers["kafka_producer"] = producer
	}
	if rc != nil {
		c.Closers["redis"] = rc
	}
	if ch != nil {
		c.Closers["clickhouse"] = ch
	}
	return server.New(l, c, cfg.Server.ShutdownTimeout)
}

// ProvideStdinRunner creates the one-shot stdin batch runner.
func ProvideStdinRunner(batch *usecase.BatchForecaster, l *applogger.Logger) *stdio.Runner {
	return stdio.NewRunner(batch, l)
}

// ProvideLocalCache keeps results in process for one-shot runs.
func ProvideLocalCache(cfg *config.Config) icache.BytesCache {
	return icache.NewTTLCache(cfg.Forecast.CacheEntries)
}
