package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"nxn_tictactoe/internal/adapters"
	"nxn_tictactoe/internal/bootstrap"
	"nxn_tictactoe/internal/logger"
	"nxn_tictactoe/internal/repository"
	"nxn_tictactoe/internal/rules"
	gameuc "nxn_tictactoe/internal/usecase/game"
	engine "nxn_tictactoe/microservices/proto"
	"nxn_tictactoe/microservices/usecase"
)

func main() {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		panic("failed to setup configuration: " + err.Error())
	}
	log := logger.New(cfg.Debug)
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cache gameuc.MoveCache
	if cfg.RedisUrl != "" {
		redisAdapter := adapters.NewAdapterRedis(cfg, log)
		if err := redisAdapter.Init(ctx); err != nil {
			log.Fatalf("failed to initialise Redis: %v", err)
		}
		defer redisAdapter.Close(ctx)
		cache = repository.NewMoveCacheRedis(redisAdapter.GetClient(), cfg.MoveCacheTTL)
	}

	lis, err := net.Listen("tcp", cfg.EngineGrpcPort)
	if err != nil {
		log.Fatalf("cant listen port %s: %v", cfg.EngineGrpcPort, err)
	}

	gameUC := gameuc.NewGameUseCase(log, rules.Default(), cache, gameuc.Options{
		SearchTimeout: cfg.SearchTimeout,
		MaxBoardSize:  cfg.MaxBoardSize,
	})

	server := grpc.NewServer()
	engine.RegisterEngineServiceServer(server, usecase.NewEngineUseCase(log, gameUC))

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		log.Info("Received shutdown signal")
		server.GracefulStop()
	}()

	log.Infof("engine service listening on %s", cfg.EngineGrpcPort)
	if err := server.Serve(lis); err != nil {
		log.Fatalf("grpc server stopped: %v", err)
	}
}
