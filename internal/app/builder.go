package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/BheruLalM/edustore-api/internal/auth/blacklist"
	"github.com/BheruLalM/edustore-api/internal/auth/hasher"
	"github.com/BheruLalM/edustore-api/internal/auth/otp"
	"github.com/BheruLalM/edustore-api/internal/auth/token"
	"github.com/BheruLalM/edustore-api/internal/cache"
	"github.com/BheruLalM/edustore-api/internal/config"
	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/feed"
	redisx "github.com/BheruLalM/edustore-api/internal/infra/cache/redis"
	"github.com/BheruLalM/edustore-api/internal/infra/database/postgres"
	"github.com/BheruLalM/edustore-api/internal/infra/storage/awss3"
	miniostore "github.com/BheruLalM/edustore-api/internal/infra/storage/minio"
	"github.com/BheruLalM/edustore-api/internal/media"
	"github.com/BheruLalM/edustore-api/internal/notify"
	"github.com/BheruLalM/edustore-api/internal/service"
	"github.com/BheruLalM/edustore-api/internal/transport/web"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/auth"
	chathttp "github.com/BheruLalM/edustore-api/internal/transport/web/v1/chat"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/comment"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/doc"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/health"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/profile"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/social"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/stats"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	server *web.Server
	log    zerolog.Logger
	bg     *notify.Dispatcher
	redis  *redisx.Cache
	repo   *postgres.PGRepo
}

// NewLogger: корневой логгер; в dev пишет человекочитаемо.
func NewLogger(env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	var base zerolog.Logger
	if env == "dev" {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly})
	} else {
		base = zerolog.New(os.Stdout)
	}
	return base.Level(lvl).With().Timestamp().Str("service", "edustore").Logger()
}

func component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

func Build(ctx context.Context, cfg *config.Config, base zerolog.Logger) (*App, error) {
	base.Info().Msgf("configuration: %s-------------------", cfg)

	base.Info().Msg("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, component(base, "postgres"), cfg.GetDSN(), cfg.DBScheme, cfg.DBTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}

	base.Info().Str("provider", cfg.StorageProvider).Msg("init object storage")
	storage, err := newStorage(ctx, cfg, component(base, "storage"))
	if err != nil {
		pgRepo.Close()
		return nil, fmt.Errorf("failed init storage: %w", err)
	}

	// Redis нужен всегда (OTP, чёрный список токенов);
	// CACHE_ENABLED выключает только кеш ответов.
	base.Info().Msg("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, component(base, "redis"))
	if err := rc.Ping(ctx); err != nil {
		pgRepo.Close()
		rc.Close()
		return nil, fmt.Errorf("failed init redis: %w", err)
	}

	cacheLog := component(base, "cache")
	var backend domain.Cache
	var cachePinger health.Pinger
	if cfg.CacheEnabled {
		backend = rc
		cachePinger = rc
	} else {
		base.Warn().Msg("response cache disabled")
	}
	store := cache.NewStore(backend, cfg.CacheTimeout, cacheLog)
	states := cache.NewUserStates(store, pgRepo, cfg.UserStateTTL)
	urls := media.NewURLs(storage, store, cfg.AvatarURLTTL, cfg.StorageTimeout, component(base, "media"))
	assembler := feed.NewAssembler(pgRepo, store, states, urls, feed.Config{
		DefaultLimit: cfg.FeedDefaultLimit,
		MaxLimit:     cfg.FeedMaxLimit,
		FeedTTL:      cfg.FeedTTL,
		ListTTL:      cfg.ListTTL,
	}, component(base, "feed"))

	bgLog := component(base, "notify")
	bg := notify.NewDispatcher(cfg.NotifyTimeout, bgLog)
	chat := notify.NewChatSync(cfg.ChatServiceURL, &http.Client{Timeout: cfg.NotifyTimeout}, bgLog)

	deps := service.Deps{
		Users:     pgRepo,
		Profiles:  pgRepo,
		Docs:      pgRepo,
		Likes:     pgRepo,
		Bookmarks: pgRepo,
		Follows:   pgRepo,
		Comments:  pgRepo,
		Search:    pgRepo,

		Storage: storage,
		Store:   store,
		States:  states,
		Inv:     cache.NewInvalidator(store, cacheLog),
		URLs:    urls,
		Feed:    assembler,
		Bg:      bg,
		Chat:    chat,

		Paging: service.Paging{DefaultLimit: cfg.FeedDefaultLimit, MaxLimit: cfg.FeedMaxLimit},
		Log:    component(base, "service"),
	}

	// Auth primitives
	otpStore := otp.NewStore(rc, hasher.NewForOTP(), otp.Config{
		TTL:         cfg.OTPTTL,
		Cooldown:    cfg.OTPCooldown,
		MaxAttempts: cfg.OTPMaxAttempts,
	})
	tm := token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthTokenTTL)
	bl := blacklist.NewStore(rc)
	authSvc := service.NewAuth(deps, otpStore, tm, bl, notify.NewLogMailer(cfg.MailFrom, bgLog))

	maxUpload := int64(cfg.MaxUploadMB) << 20
	docsSvc := service.NewDocuments(deps, service.DocsConfig{DetailTTL: cfg.DocTTL, MaxUploadBytes: maxUpload})

	base.Info().Msg("init Server")
	httpLog := component(base, "http")
	lat := mw.NewLatency()
	handlers := web.Handlers{
		Health:  &health.Handler{Log: httpLog, DB: pgRepo, Cache: cachePinger, Storage: storage},
		Auth:    &auth.Handler{Log: httpLog, Auth: authSvc},
		Docs:    &doc.Handler{Log: httpLog, Docs: docsSvc, MaxUploadBytes: maxUpload},
		Comment: &comment.Handler{Log: httpLog, Comments: service.NewComments(deps, cfg.CommentMaxDepth)},
		Profile: &profile.Handler{Log: httpLog, Profiles: service.NewProfiles(deps, service.ProfilesConfig{ProfileTTL: cfg.ProfileTTL})},
		Social: &social.Handler{
			Log:       httpLog,
			Likes:     service.NewLikes(deps),
			Bookmarks: service.NewBookmarks(deps),
			Follows:   service.NewFollows(deps),
		},
		Chat:  &chathttp.Handler{Log: httpLog, Chat: service.NewChat(deps)},
		Stats: &stats.Handler{Source: lat},
	}
	server := web.New(component(base, "server"), cfg, handlers, authSvc, lat)

	base.Info().Msg("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		bg:     bg,
		redis:  rc,
		repo:   pgRepo,
	}, nil
}

func newStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (domain.ObjectStorage, error) {
	switch cfg.StorageProvider {
	case config.StorageS3:
		return awss3.New(ctx, awss3.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PathStyle: cfg.S3PathStyle,
			Timeout:   cfg.StorageTimeout,
		}, log)
	default:
		return miniostore.New(miniostore.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			PathStyle: cfg.S3PathStyle,
			Timeout:   cfg.StorageTimeout,
		}, log)
	}
}

// Run держит сервер до отмены ctx, затем гасит его и ждёт фоновые задачи.
func (a *App) Run(ctx context.Context) error {
	a.log.Info().Msg("start application...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run)
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info().Msg("stop application...")

		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := a.server.Close(stopCtx)
		if werr := a.bg.Wait(stopCtx); werr != nil {
			a.log.Warn().Err(werr).Msg("background tasks not finished")
		}
		return err
	})

	err := g.Wait()
	a.repo.Close()
	a.redis.Close()
	return err
}
