package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"nxn_tictactoe/internal/adapters"
	"nxn_tictactoe/internal/bootstrap"
	gameDelivery "nxn_tictactoe/internal/delivery/game"
	rulesDelivery "nxn_tictactoe/internal/delivery/rules"
	"nxn_tictactoe/internal/logger"
	ownMiddleware "nxn_tictactoe/internal/middleware"
	"nxn_tictactoe/internal/repository"
	"nxn_tictactoe/internal/rules"
	gameuc "nxn_tictactoe/internal/usecase/game"
	rulesUC "nxn_tictactoe/internal/usecase/rules"
	engineProto "nxn_tictactoe/microservices/proto"
)

type mainDeliveryHandler struct {
	game  *gameDelivery.GameHandler
	rules *rulesDelivery.RulesHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		panic("failed to setup configuration: " + err.Error())
	}
	log := logger.New(cfg.Debug)
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, log)

	databaseAdapters := initDatabaseAdapters(ctx, log, cfg)
	defer databaseAdapters.Close(context.Background())

	var remote *grpc.ClientConn
	if cfg.EngineGrpcAddr != "" {
		remote, err = grpc.NewClient(cfg.EngineGrpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			log.Fatalw("Failed to dial engine service", "addr", cfg.EngineGrpcAddr, zap.Error(err))
		}
		defer remote.Close()
	}

	handlers := initializeDeliveryHandlers(ctx, cfg, log, remote, databaseAdapters)

	r := chi.NewRouter()
	handlers.Router(r, cfg)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
	}()

	log.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalw("Failed to start server", "port", cfg.ServerPort, zap.Error(err))
	}
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, cfg *bootstrap.Config) {
	r.Use(ownMiddleware.RequestID)
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/api/make_move", h.game.HandleMakeMove)
	r.Post("/api/is_winner", h.game.HandleIsWinner)
	r.Get("/ws/play", h.game.HandlePlay)
	r.Get("/api/rules", h.rules.HandleListSizes)
	r.Get("/api/rules/{size}", h.rules.HandleGetRules)

	if cfg.StaticDir != "" {
		index := filepath.Join(cfg.StaticDir, "index.html")
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, index)
		})
		assets := http.FileServer(http.Dir(filepath.Join(cfg.StaticDir, "assets")))
		r.Handle("/assets/*", http.StripPrefix("/assets/", assets))
	}
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	db := &dataBaseAdapters{}

	if cfg.MongoUri != "" {
		mongoAdapter := adapters.NewAdapterMongo(cfg, log)
		if err := mongoAdapter.Init(ctx); err != nil {
			log.Fatalw("Failed to initialise MongoDB", zap.Error(err))
		}
		db.mongoAdapter = mongoAdapter
	}

	if cfg.RedisUrl != "" {
		redisAdapter := adapters.NewAdapterRedis(cfg, log)
		if err := redisAdapter.Init(ctx); err != nil {
			log.Fatalw("Failed to initialise Redis", zap.Error(err))
		}
		db.redisAdapter = redisAdapter
	}

	log.Infof("Database adapters initialised (mongo: %t, redis: %t)", db.mongoAdapter != nil, db.redisAdapter != nil)
	return db
}

func (d *dataBaseAdapters) Close(ctx context.Context) {
	if d.mongoAdapter != nil {
		_ = d.mongoAdapter.Close(ctx)
	}
	if d.redisAdapter != nil {
		_ = d.redisAdapter.Close(ctx)
	}
}

func initializeDeliveryHandlers(
	ctx context.Context,
	cfg *bootstrap.Config,
	log *zap.SugaredLogger,
	remote *grpc.ClientConn,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	catalog := rules.Default()

	var store rulesUC.RuleStore
	if databaseAdapters.mongoAdapter != nil {
		rulesRepo := repository.NewRulesMongo(log, databaseAdapters.mongoAdapter.Database)
		if err := rulesRepo.EnsureIndexes(ctx); err != nil {
			log.Warnf("failed to create rule archive indexes: %v", err)
		}
		store = rulesRepo
	}
	rulesUseCase := rulesUC.NewRulesUseCase(log, catalog, store, cfg.MaxBoardSize)

	if sizes, err := cfg.WarmSizes(); err != nil {
		log.Warnf("ignoring WARM_BOARD_SIZES: %v", err)
	} else if err = rulesUseCase.Warm(ctx, sizes); err != nil {
		log.Warnf("catalog warm-up failed: %v", err)
	}

	var gameService gameDelivery.GameService
	if remote != nil {
		log.Infof("Delegating game operations to engine service at %s", cfg.EngineGrpcAddr)
		gameService = repository.NewEngineGRPC(log, engineProto.NewEngineServiceClient(remote))
	} else {
		var cache gameuc.MoveCache
		if databaseAdapters.redisAdapter != nil {
			cache = repository.NewMoveCacheRedis(databaseAdapters.redisAdapter.GetClient(), cfg.MoveCacheTTL)
		}
		gameService = gameuc.NewGameUseCase(log, catalog, cache, gameuc.Options{
			SearchTimeout: cfg.SearchTimeout,
			MaxBoardSize:  cfg.MaxBoardSize,
		})
	}

	return &mainDeliveryHandler{
		game:  gameDelivery.NewGameHandler(log, gameService, cfg.WsReadTimeout, cfg.MaxBoardSize),
		rules: rulesDelivery.NewRulesHandler(log, rulesUseCase),
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
