package app

import (
	"context"
	"time"

	"statusdeck/config"
	middle "statusdeck/internals/middleware"
	"statusdeck/internals/modules/component"
	"statusdeck/internals/modules/incident"
	"statusdeck/internals/modules/uptime"
	"statusdeck/internals/security"
	"statusdeck/pkg/rabbitmq"
	"statusdeck/pkg/redisstore"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Container struct {
	DB               *pgxpool.Pool
	RedisClient      *redisstore.Client
	AMQPConn         *amqp091.Connection
	Logger           *zerolog.Logger
	SnapshotRunner   *uptime.SnapshotRunner
	componentHandler *component.Handler
	incidentHandler  *incident.Handler
	uptimeHandler    *uptime.Handler
	authMW           *middle.AuthMiddleware
}

func NewContainer(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zerolog.Logger) (*Container, error) {

	redisClient, err := redisstore.New(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}

	// Reporting timezone is an explicit input; day boundaries must not
	// drift with wherever the process happens to run.
	loc, err := time.LoadLocation(cfg.Uptime.ReportingTimezone)
	if err != nil {
		return nil, err
	}

	amqpConn, err := rabbitmq.NewConnection(cfg.RabbitMQ)
	if err != nil {
		return nil, err
	}
	if err := rabbitmq.SetupTopology(amqpConn, cfg.RabbitMQ); err != nil {
		return nil, err
	}
	publisher, err := rabbitmq.NewPublisher(amqpConn, cfg.RabbitMQ.ExchangeName, cfg.RabbitMQ.RoutingKey)
	if err != nil {
		return nil, err
	}

	validate := validator.New()

	uptimeRepo := uptime.NewRepository(db, logger)
	componentRepo := component.NewRepository(db, logger)
	incidentRepo := incident.NewRepository(db, logger)

	weights := make(map[uptime.Status]float64, len(cfg.Uptime.Weights))
	for status, w := range cfg.Uptime.Weights {
		weights[uptime.Status(status)] = w
	}
	if len(weights) == 0 {
		weights = uptime.DefaultWeights()
	}

	uptimeSvc := uptime.NewService(uptimeRepo, redisClient, uptime.Options{
		Weights:       weights,
		Genesis:       uptime.Status(cfg.Uptime.GenesisStatus),
		Location:      loc,
		CacheTTL:      cfg.Uptime.CacheTTL,
		MaxWindowDays: cfg.Uptime.MaxWindowDays,
	}, logger)

	recorder := uptime.NewRecorder(uptimeRepo, loc, logger)
	runner := uptime.NewSnapshotRunner(ctx, recorder, cfg.Uptime.SnapshotInterval, logger)

	componentSvc := component.NewService(componentRepo, publisher, logger)
	incidentSvc := incident.NewService(incidentRepo, loc, cfg.Uptime.MaxWindowDays)

	tokenSvc := security.NewTokenService(cfg.Auth)
	authMW := middle.NewAuthMiddleware(tokenSvc)

	return &Container{
		DB:               db,
		RedisClient:      redisClient,
		AMQPConn:         amqpConn,
		Logger:           logger,
		SnapshotRunner:   runner,
		componentHandler: component.NewHandler(componentSvc, validate),
		incidentHandler:  incident.NewHandler(incidentSvc, validate),
		uptimeHandler:    uptime.NewHandler(uptimeSvc, recorder),
		authMW:           authMW,
	}, nil
}

func (c *Container) Shutdown() error {
	if c.AMQPConn != nil {
		_ = c.AMQPConn.Close()
	}
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
	return nil
}
