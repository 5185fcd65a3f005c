package main

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"donly-service/config"
	"donly-service/internal/api"
	"donly-service/internal/broker"
	"donly-service/internal/chain"
	"donly-service/internal/contract"
	"donly-service/internal/redisclient"
	"donly-service/internal/service"
	"donly-service/internal/store"
	"donly-service/internal/util"
	"donly-service/internal/worker"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting donly service")

	tp, err := util.InitTracer("donly-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEntity)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	rpcClient, err := ethclient.Dial(cfg.Chain.RPCURL)
	if err != nil {
		log.Fatalf("Failed to connect to chain RPC: %v", err)
	}
	defer rpcClient.Close()
	log.Println("Chain RPC connected")

	if !common.IsHexAddress(cfg.Chain.ContractAddress) {
		log.Fatalf("Invalid contract address: %s", cfg.Chain.ContractAddress)
	}
	donly, err := contract.NewDonly(common.HexToAddress(cfg.Chain.ContractAddress), rpcClient)
	if err != nil {
		log.Fatalf("Failed to bind contract: %v", err)
	}

	key, err := crypto.HexToECDSA(cfg.Chain.PrivateKey)
	if err != nil {
		log.Fatalf("Failed to parse transactor key: %v", err)
	}
	transactOpts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(cfg.Chain.ChainID))
	if err != nil {
		log.Fatalf("Failed to create transactor: %v", err)
	}

	reader := chain.NewContractReader(donly, cfg.Chain.CallTimeout)
	writer := chain.NewWriter(donly, transactOpts, cfg.Chain.CallTimeout)

	reconciler := service.NewReconciler(reader, db, cfg.Reconcile.WorkerCount)
	writeService := service.NewWriteService(writer, reader, db, eventPublisher, redisClient)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	entityConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicEntity, cfg.Kafka.ConsumerGroup)
	invalidationWorker := worker.NewInvalidationWorker(entityConsumer, redisClient)
	go func() {
		if err := invalidationWorker.Start(workerCtx); err != nil {
			log.Printf("Invalidation worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(reader, reconciler, writeService, redisClient, cfg.Reconcile.CacheTTL)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	invalidationWorker.Stop()

	log.Println("Server exited")
}
