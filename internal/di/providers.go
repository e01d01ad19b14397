package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"BizPulse/internal/domain/repository"
	"BizPulse/internal/handler/api"
	internalrepo "BizPulse/internal/repository"
	"BizPulse/internal/service/notify"
	"BizPulse/internal/services/sample"
	"BizPulse/internal/usecase"
	pkgcache "BizPulse/pkg/cache"
	pkgch "BizPulse/pkg/clickhouse"
	"BizPulse/pkg/config"
	xhttp "BizPulse/pkg/http"
	pkgkafka "BizPulse/pkg/kafka"
	applogger "BizPulse/pkg/logger"
	"BizPulse/pkg/metrics"
	"BizPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lcfg := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lcfg.Level == "" {
		lcfg.Level = "info"
	}
	if lcfg.Format == "" {
		lcfg.Format = "console"
	}
	if lcfg.Output == "" {
		lcfg.Output = "stdout"
	}
	return applogger.New(lcfg)
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the
// database exists.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.ClickHouse.Database)}
	if err := client.InitSchema(ctx, stmts); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse database: %w", err)
	}

	return client, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideDatasetStore creates the ClickHouse dataset store and ensures
// its tables exist.
func ProvideDatasetStore(chClient *pkgch.Client, l *applogger.Logger) (repository.DatasetStore, error) {
	store := internalrepo.NewClickHouseStore(chClient)
	store.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("dataset schema: %w", err)
	}
	return store, nil
}

// ProvideCache builds the report cache: Redis-backed when enabled,
// in-memory otherwise.
func ProvideCache(cfg *config.Config, l *applogger.Logger) pkgcache.Service {
	if !cfg.Analytics.Redis.Enabled {
		return pkgcache.NewMemoryCache()
	}

	host, port := splitHostPort(cfg.Analytics.Redis.Addr)
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Analytics.Redis.Password),
		pkgcache.WithRedisDB(cfg.Analytics.Redis.DB),
		pkgcache.WithRedisPrefix("bizpulse"),
	)
	if err != nil {
		l.Warn("redis unavailable, falling back to memory cache", applogger.Error(err))
		return pkgcache.NewMemoryCache()
	}
	return pkgcache.NewLayeredCache(rc)
}

func splitHostPort(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 6379
	}
	return host, port
}

// ProvideKafkaProducer creates a Kafka producer for the kafka backend.
// The clickhouse backend runs without one.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != usecase.BackendKafka {
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
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher wraps the producer as a record publisher.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer for the kafka backend.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Backend.Type != usecase.BackendKafka {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaRecordsHandler registers the handler for the records topic.
func ProvideKafkaRecordsHandler(store repository.DatasetStore, m repository.Metrics, cfg *config.Config) *usecase.KafkaRecordsHandler {
	return usecase.NewKafkaRecordsHandler(cfg.Kafka.Topic, store, m)
}

// ProvideSampleGenerator creates the sample data generator.
func ProvideSampleGenerator() *sample.Generator {
	return sample.NewGenerator()
}

// ProvideIngestProcessor creates the ingest routing use case.
func ProvideIngestProcessor(
	pub repository.Publisher,
	store repository.DatasetStore,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.IngestProcessor {
	return usecase.NewIngestProcessor(pub, store, m, cfg.Backend.Type)
}

// ProvideAnalyzer creates the dashboard analytics use case.
func ProvideAnalyzer(
	store repository.DatasetStore,
	cache pkgcache.Service,
	m repository.Metrics,
	gen *sample.Generator,
	proc *usecase.IngestProcessor,
	notifier *notify.WebhookNotifier,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.Analyzer {
	ttl := cfg.Analytics.CacheTTL.Report
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	analyzer := usecase.NewAnalyzer(store, cache, m, gen, proc, l, ttl)
	if notifier != nil {
		analyzer.SetNotifier(notifier)
	}
	return analyzer
}

// ProvideDashboardHandler creates the Echo API handler.
func ProvideDashboardHandler(l *applogger.Logger, analyzer *usecase.Analyzer) xhttp.Handler {
	return api.NewDashboardHandler(l, analyzer)
}

// ProvideAlertNotifier creates the webhook notifier when configured.
func ProvideAlertNotifier(cfg *config.Config, l *applogger.Logger) *notify.WebhookNotifier {
	if cfg.Alerts.WebhookURL == "" {
		return nil
	}
	return notify.NewWebhookNotifier(cfg.Alerts.WebhookURL, cfg.Alerts.Timeout, l)
}

// kafkaLogSink adapts the Kafka producer for aggregated log shipping.
type kafkaLogSink struct {
	producer *pkgkafka.Producer
}

func (s kafkaLogSink) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return s.producer.Publish(ctx, topic, nil, payload)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	producer *pkgkafka.Producer,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaRecordsHandler,
	chClient *pkgch.Client,
	proc *usecase.IngestProcessor,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	if producer != nil && cfg.Kafka.LogsTopic != "" {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogsTopic,
			Publisher:      kafkaLogSink{producer: producer},
		})
	}
	app := server.New(cfg, l, handler, consumer, kh, chClient)
	app.IngestProc = proc
	return app
}
