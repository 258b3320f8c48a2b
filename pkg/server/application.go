package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"

	"social-server/pkg/config"
	"social-server/pkg/database"
	"social-server/pkg/kafka"
	"social-server/pkg/lifecycle"
	"social-server/pkg/logger"
	"social-server/pkg/middleware"
	"social-server/pkg/redis"
	"social-server/pkg/telemetry"
)

// Application 应用程序框架
type Application struct {
	serviceName    string
	config         *config.Config
	logger         kratoslog.Logger
	originalLogger logger.Logger
	serverManager  *ServerManager
	lifecycle      *lifecycle.LifecycleManager

	// 基础设施组件
	postgreSQL    *database.PostgreSQL
	elasticSearch *database.ElasticSearch
	redisClient   *redis.RedisClient
	kafkaProducer *kafka.Producer
	telemetry     *telemetry.Provider

	// 中间件
	authMiddleware    *middleware.AuthMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	otelMiddleware    *middleware.OTelMiddleware
}

// NewApplication 创建应用程序
func NewApplication(serviceName string) *Application {
	cfg, err := config.LoadConfig(serviceName)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.App.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	originalLogger := logger.GetLogger()

	kratosLogger := logger.NewKratosStdLogger(cfg.App.Name, cfg.App.Version)

	app := &Application{
		serviceName:       serviceName,
		config:            cfg,
		logger:            kratosLogger,
		originalLogger:    originalLogger,
		serverManager:     NewServerManager(cfg, kratosLogger),
		lifecycle:         lifecycle.NewLifecycleManager(kratosLogger),
		authMiddleware:    middleware.NewAuthMiddleware(kratosLogger, cfg.App.JWTSecret),
		loggingMiddleware: middleware.NewLoggingMiddleware(kratosLogger),
		otelMiddleware:    middleware.NewOTelMiddleware(serviceName, originalLogger),
	}

	app.initInfrastructure()

	return app
}

// initInfrastructure 初始化基础设施组件
func (app *Application) initInfrastructure() {
	// PostgreSQL
	postgreSQL, err := database.NewPostgreSQL(
		app.config.Database.PostgreSQL.DSN,
		app.config.Database.PostgreSQL.DBName,
	)
	if err != nil {
		app.logger.Log(kratoslog.LevelFatal, "msg", "Failed to connect to PostgreSQL", "error", err)
		panic(err)
	}
	app.postgreSQL = postgreSQL

	// Redis
	app.redisClient = redis.NewRedisClient(
		app.config.Redis.Addr,
		app.config.Redis.Password,
		app.config.Redis.DB,
	)

	// Kafka
	kafkaProducer, err := kafka.InitProducer(app.config.Kafka.Brokers)
	if err != nil {
		app.logger.Log(kratoslog.LevelFatal, "msg", "Failed to init Kafka producer", "error", err)
		panic(err)
	}
	app.kafkaProducer = kafkaProducer

	// ElasticSearch 可选，没有时业务层退回PostgreSQL检索
	if app.config.Elasticsearch.Enabled {
		es, err := database.NewElasticSearch(
			app.config.Elasticsearch.Addresses,
			app.config.Elasticsearch.Username,
			app.config.Elasticsearch.Password,
		)
		if err != nil {
			app.logger.Log(kratoslog.LevelWarn, "msg", "ElasticSearch unavailable, search falls back to PostgreSQL", "error", err)
		} else {
			app.elasticSearch = es
		}
	}

	// OpenTelemetry
	provider, err := telemetry.NewProvider(telemetry.DefaultConfig(app.serviceName))
	if err != nil {
		app.logger.Log(kratoslog.LevelWarn, "msg", "Failed to init telemetry", "error", err)
	} else {
		app.telemetry = provider
	}

	app.registerInfrastructureHooks()
}

// registerInfrastructureHooks 注册基础设施的生命周期钩子
func (app *Application) registerInfrastructureHooks() {
	app.lifecycle.AddHook(lifecycle.Hook{
		Name:     "postgresql",
		Priority: 10,
		OnStart: func(ctx context.Context) error {
			return app.postgreSQL.Health(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return app.postgreSQL.Close()
		},
	})

	app.lifecycle.AddHook(lifecycle.Hook{
		Name:     "redis",
		Priority: 11,
		OnStart: func(ctx context.Context) error {
			return app.redisClient.Ping(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return app.redisClient.Close()
		},
	})

	app.lifecycle.AddHook(lifecycle.Hook{
		Name:     "kafka-producer",
		Priority: 12,
		OnStop: func(ctx context.Context) error {
			return app.kafkaProducer.Close()
		},
	})

	if app.telemetry != nil {
		app.lifecycle.AddHook(lifecycle.Hook{
			Name:     "telemetry",
			Priority: 13,
			OnStop: func(ctx context.Context) error {
				return app.telemetry.Shutdown(ctx)
			},
		})
	}
}

// EnableHTTP 启用HTTP服务器
func (app *Application) EnableHTTP() {
	httpServer := app.serverManager.EnableHTTP()

	// 全局中间件：追踪在认证之前，认证在业务路由之前
	engine := httpServer.GetEngine()
	engine.Use(app.loggingMiddleware.GinLogging())
	engine.Use(app.loggingMiddleware.GinRecovery())
	engine.Use(app.otelMiddleware.GinMiddleware())
	engine.Use(app.authMiddleware.GinAuth())

	app.lifecycle.AddHook(lifecycle.Hook{
		Name:     "http-server",
		Priority: 100,
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := httpServer.Start(ctx); err != nil {
					app.logger.Log(kratoslog.LevelError, "msg", "HTTP server exited", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpServer.Stop(ctx)
		},
	})
}

// RegisterHTTPRoutes 注册HTTP路由
func (app *Application) RegisterHTTPRoutes(registerFunc func(*gin.Engine)) {
	if err := app.serverManager.RegisterHTTPRoutes(registerFunc); err != nil {
		panic(err)
	}
}

// Run 运行应用程序直到收到退出信号
func (app *Application) Run() error {
	if err := app.lifecycle.Start(); err != nil {
		return err
	}

	app.logger.Log(kratoslog.LevelInfo, "msg", "Application started", "service", app.serviceName)

	app.lifecycle.WaitForSignal()

	return app.lifecycle.Stop()
}

// GetConfig 获取配置
func (app *Application) GetConfig() *config.Config {
	return app.config
}

// GetLogger 获取业务日志器
func (app *Application) GetLogger() logger.Logger {
	return app.originalLogger
}

// GetPostgreSQL 获取PostgreSQL连接
func (app *Application) GetPostgreSQL() *database.PostgreSQL {
	return app.postgreSQL
}

// GetElasticSearch 获取ElasticSearch连接，可能为nil
func (app *Application) GetElasticSearch() *database.ElasticSearch {
	return app.elasticSearch
}

// GetRedisClient 获取Redis客户端
func (app *Application) GetRedisClient() *redis.RedisClient {
	return app.redisClient
}

// GetKafkaProducer 获取Kafka生产者
func (app *Application) GetKafkaProducer() *kafka.Producer {
	return app.kafkaProducer
}
