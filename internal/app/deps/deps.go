package deps

import (
	"context"
	"net/url"
	"sync"
	"time"
	"voiceremind/internal/config"
	"voiceremind/internal/core/domain/bot"
	dl "voiceremind/internal/core/domain/logging"
	drl "voiceremind/internal/core/domain/rate_limiter"
	"voiceremind/internal/core/domain/reminder"
	"voiceremind/internal/core/domain/voice"
	dbreminder "voiceremind/internal/db/reminder"
	"voiceremind/internal/implementations/groq"
	"voiceremind/internal/implementations/line"
	"voiceremind/internal/implementations/logging"
	ratelimiter "voiceremind/internal/implementations/rate_limiter"
	remindersender "voiceremind/internal/implementations/reminder_sender"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB    *pgxpool.Pool
	Redis *redis.Client

	Now func() time.Time

	ReminderRepository reminder.ReminderRepository

	RateLimiter drl.RateLimiter

	LineClient         *line.Client
	SignatureValidator *line.SignatureValidator

	MessageSender         bot.MessageSender
	MessageContentFetcher bot.MessageContentFetcher

	Transcriber    voice.Transcriber
	EventExtractor voice.EventExtractor

	ReminderSender reminder.Sender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.ReminderRepository = dbreminder.NewPgxReminderRepository(deps.DB)
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	deps.initLineClient()
	deps.SignatureValidator = line.NewSignatureValidator(deps.Config.LineChannelSecret)
	deps.MessageSender = deps.LineClient
	deps.MessageContentFetcher = deps.LineClient

	groqClient := groq.New(
		deps.Config.GroqAPIKey,
		deps.Config.GroqBaseURL,
		deps.Config.GroqTranscriptionModel,
		deps.Config.GroqExtractionModel,
	)
	deps.Transcriber = groqClient
	deps.EventExtractor = groqClient

	deps.ReminderSender = remindersender.New(deps.MessageSender)

	return deps, func() {
		closeFuncs := []func(){
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initLineClient() {
	apiEndpoint, err := url.Parse(deps.Config.LineAPIEndpoint)
	if err != nil {
		deps.Logger.Error(context.Background(), "Invalid LINE API endpoint.", dl.Entry("err", err))
		panic(err)
	}
	dataEndpoint, err := url.Parse(deps.Config.LineAPIDataEndpoint)
	if err != nil {
		deps.Logger.Error(context.Background(), "Invalid LINE API data endpoint.", dl.Entry("err", err))
		panic(err)
	}
	deps.LineClient = line.New(
		*apiEndpoint,
		*dataEndpoint,
		deps.Config.LineChannelAccessToken,
		deps.Config.LineRequestTimeout,
	)
}
