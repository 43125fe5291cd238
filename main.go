package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-robomaze/api"
	gameapi "github.com/beka-birhanu/vinom-robomaze/api/game"
	api_i "github.com/beka-birhanu/vinom-robomaze/api/i"
	"github.com/beka-birhanu/vinom-robomaze/api/identity"
	"github.com/beka-birhanu/vinom-robomaze/config"
	"github.com/beka-birhanu/vinom-robomaze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-robomaze/infrastruture/runlock"
	"github.com/beka-birhanu/vinom-robomaze/infrastruture/sessionstore"
	"github.com/beka-birhanu/vinom-robomaze/infrastruture/token"
	"github.com/beka-birhanu/vinom-robomaze/robot"
	"github.com/beka-birhanu/vinom-robomaze/service"
	"github.com/beka-birhanu/vinom-robomaze/service/i"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	logger "github.com/beka-birhanu/vinom-common/log"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// runLockMargin is added to the longest possible playback when sizing the run lock.
const runLockMargin = 10 * time.Second

// Global variables for dependencies
var (
	mongoClient       *mongo.Client
	redisClient       *redis.Client
	mazeRepo          i.MazeRepo
	sessionStore      i.SessionStore
	runLocker         i.RunLocker
	jwtTokenizer      i.SessionTokenizer
	sessionManager    i.SessionManager
	sessionController api_i.Controller
	router            *api.Router
	appLogger         general_i.Logger
)

func newLogger(prefix, color string) general_i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initMazeRepo(ctx context.Context) {
	if config.Envs.DBHost == "" {
		mazeRepo = repo.NewMemoryMazeRepo()
		appLogger.Warning("DB_HOST not set, mazes are kept in memory")
		return
	}

	initMongo(ctx)
	mazeRepo = repo.NewMazeRepo(mongoClient, config.Envs.DBName, "mazes")
	appLogger.Info("Maze repository initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initSessionStorage(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		sessionStore = sessionstore.NewMemoryStore()
		runLocker = runlock.NewMemoryLocker()
		appLogger.Warning("REDIS_ADDR not set, sessions are kept in memory")
		return
	}

	initRedis(ctx)
	sessionStore = sessionstore.NewRedisStore(redisClient, config.Envs.SessionTTLSeconds)
	longestRun := time.Duration(robot.MaxCommands) * stepDelay()
	runLocker = runlock.NewRedisLocker(redisClient, longestRun+runLockMargin)
	appLogger.Info("Session store and run locker initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.MustJWTSecret(), config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initSessionManager() {
	var err error
	sessionManager, err = service.NewGameSessionManager(&service.Config{
		Store:     sessionStore,
		Locker:    runLocker,
		MazeRepo:  mazeRepo,
		Tokenizer: jwtTokenizer,
		Logger:    newLogger("SESSION-MANAGER", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initSessionController() {
	var err error
	sessionController, err = gameapi.NewSessionController(sessionManager, stepDelay())
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session controller initialized")
}

func initRouter(t i.SessionTokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{sessionController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func stepDelay() time.Duration {
	return time.Duration(config.Envs.StepDelayMS) * time.Millisecond
}

func main() {
	var err error
	if appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout); err != nil {
		log.Fatalf("%s[APP]%s %s[FATAL]%s Creating app logger: %v", config.ColorGreen, config.ColorReset, config.ColorRed, config.ColorReset, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	initMazeRepo(initCtx)
	if mongoClient != nil {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}

	initSessionStorage(initCtx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initJWTTokenizer()
	initSessionManager()
	initSessionController()
	initRouter(jwtTokenizer)

	// Run HTTP server until interrupted
	if err := router.Run(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Running server: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Server stopped")
}
