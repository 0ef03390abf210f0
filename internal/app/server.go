// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"casino-loyalty-service/internal/config"
	"casino-loyalty-service/internal/db"
	"casino-loyalty-service/internal/domain/customer"
	"casino-loyalty-service/internal/domain/promotion"
	"casino-loyalty-service/internal/domain/ticket"
	"casino-loyalty-service/internal/domain/transaction"
	customerHandler "casino-loyalty-service/internal/handlers/customer"
	promotionHandler "casino-loyalty-service/internal/handlers/promotion"
	ticketHandler "casino-loyalty-service/internal/handlers/ticket"
	transactionHandler "casino-loyalty-service/internal/handlers/transaction"
	"casino-loyalty-service/internal/middleware"
	"casino-loyalty-service/internal/pkg/ratelimit"
	"casino-loyalty-service/internal/repository/memory"
	"casino-loyalty-service/internal/repository/postgres"
	customersvc "casino-loyalty-service/internal/service/customer"
	promotionsvc "casino-loyalty-service/internal/service/promotion"
	ticketsvc "casino-loyalty-service/internal/service/ticket"
	transactionsvc "casino-loyalty-service/internal/service/transaction"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &Server{cfg: cfg, engine: gin.New()}, nil
}

func (s *Server) Start() error {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- Repositories -----
	repos, err := s.buildRepositories(ctx)
	if err != nil {
		return err
	}

	// ----- Rate Limiter (optional, Redis-backed) -----
	var limiter *ratelimit.Limiter
	if s.cfg.RedisAddr != "" {
		redisClient, err := db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       0,
			PoolSize: 10,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		limiter = ratelimit.NewLimiter(redisClient)
		logger.Info("redis rate limiter enabled", zap.String("addr", s.cfg.RedisAddr))
	} else {
		logger.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	// ----- Services -----
	customerService := customersvc.NewCustomerService(repos.customers, repos.promotions, s.cfg.Loyalty, logger)
	promotionService := promotionsvc.NewPromotionService(repos.promotions, repos.customers, logger)
	transactionService := transactionsvc.NewTransactionService(repos.transactions, repos.customers, customerService, s.cfg.Loyalty, logger)
	ticketService := ticketsvc.NewTicketService(repos.tickets, repos.customers, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		CustomerHandler:    customerHandler.NewCustomerHandler(customerService),
		PromotionHandler:   promotionHandler.NewPromotionHandler(promotionService),
		TransactionHandler: transactionHandler.NewTransactionHandler(transactionService),
		TicketHandler:      ticketHandler.NewTicketHandler(ticketService),
		Limiter:            limiter,
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)

	// ----- Router -----
	SetupRouter(s.engine, logger, handlers)

	log.Printf("🚀 Server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

type repositories struct {
	customers    customer.Repository
	promotions   promotion.Repository
	transactions transaction.Repository
	tickets      ticket.Repository
}

// buildRepositories wires the storage backend selected by config.
// "postgres" is the production backend, "memory" serves local runs
// and tests without a database.
func (s *Server) buildRepositories(ctx context.Context) (*repositories, error) {
	switch s.cfg.StorageBackend {
	case "postgres":
		pool, err := db.ConnectPostgres(ctx, s.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		return &repositories{
			customers:    postgres.NewCustomerRepository(pool),
			promotions:   postgres.NewPromotionRepository(pool),
			transactions: postgres.NewTransactionRepository(pool),
			tickets:      postgres.NewTicketRepository(pool),
		}, nil
	case "memory":
		customers := memory.NewCustomerRepository()
		return &repositories{
			customers:    customers,
			promotions:   memory.NewPromotionRepository(customers),
			transactions: memory.NewTransactionRepository(),
			tickets:      memory.NewTicketRepository(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", s.cfg.StorageBackend)
	}
}
