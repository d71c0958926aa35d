package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsvc "earnings-analyzer/internal/app"
	"earnings-analyzer/internal/cache"
	"earnings-analyzer/internal/config"
	"earnings-analyzer/internal/pkg/pdfextract"
	mysqlClient "earnings-analyzer/internal/platform/mysql"
	rabbitmqClient "earnings-analyzer/internal/platform/rabbitmq"
	redisClient "earnings-analyzer/internal/platform/redis"
	"earnings-analyzer/internal/repository"
	"earnings-analyzer/internal/transcript"
	"earnings-analyzer/internal/worker"
)

type App struct {
	Config       *config.Config
	MySQL        *gorm.DB
	Redis        *redis.Client
	MQConn       *amqp.Connection
	QAWorker     *worker.QARecordPersistWorker
	QAPublisher  *rabbitmqClient.QARecordPublisher
	InsightCache *cache.InsightCache
	Processor    *transcript.Processor
	Workspace    *appsvc.Workspace
	Models       Models

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	processor, err := transcript.NewProcessor(cfg.TranscriptRules(), pdfextract.Extractor{})
	if err != nil {
		return nil, fmt.Errorf("build transcript processor failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlClient.Migrate(mysqlDB); err != nil {
		return nil, err
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.QAPersistQueue)
	if err != nil {
		return nil, err
	}

	qaRepo := repository.NewQARecordRepository(mysqlDB)
	qaWorker := worker.NewQARecordPersistWorker(mqConn, qaRepo, cfg.RabbitMQ.QAPersistQueue)
	if err := qaWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start qa record worker failed: %w", err)
	}

	models := NewModels(cfg)
	return &App{
		Config:       cfg,
		MySQL:        mysqlDB,
		Redis:        redisCli,
		MQConn:       mqConn,
		QAWorker:     qaWorker,
		QAPublisher:  rabbitmqClient.NewQARecordPublisher(mqConn, cfg.RabbitMQ.QAPersistQueue),
		InsightCache: cache.NewInsightCache(redisCli, time.Duration(cfg.Redis.InsightTTLSeconds)*time.Second),
		Processor:    processor,
		Workspace:    appsvc.NewWorkspace(models.Embedder, models.RetrievalOptions),
		Models:       models,
		StartedAt:    time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.QAWorker != nil {
		a.QAWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
