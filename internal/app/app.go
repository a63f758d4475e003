package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinoteka/cinema-reservation-system/internal/booking"
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
	"github.com/kinoteka/cinema-reservation-system/internal/mailer"
	"github.com/kinoteka/cinema-reservation-system/internal/pdf"
	"github.com/kinoteka/cinema-reservation-system/internal/repository"
	appvalidator "github.com/kinoteka/cinema-reservation-system/internal/validator"
	"github.com/kinoteka/cinema-reservation-system/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	sessionManager *scs.SessionManager

	coordinator *booking.Coordinator
	finalizer   *booking.Finalizer
	scheduler   *booking.Scheduler
	sweeper     *booking.Sweeper
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	Booking          BookingConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
	AutoMigrate  bool
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type BookingConfig struct {
	HoldTTL        time.Duration
	CleaningBuffer time.Duration
	SweepInterval  time.Duration
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")
	flag.BoolVar(&cfg.DB.AutoMigrate, "db-automigrate", false, "Apply pending schema migrations on startup")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "Kinoteka <no-reply@kinoteka.example.com>", "SMTP sender")

	flag.DurationVar(&cfg.Booking.HoldTTL, "booking-hold-ttl", booking.DefaultHoldTTL, "Seat hold time-to-live")
	flag.DurationVar(&cfg.Booking.CleaningBuffer, "booking-cleaning-buffer", booking.DefaultCleaningBuffer, "Room cleaning time between screenings")
	flag.DurationVar(&cfg.Booking.SweepInterval, "booking-sweep-interval", booking.DefaultSweepInterval, "Expired hold sweep interval")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := newLogger(cfg)

	validator := appvalidator.NewValidator()

	if cfg.DB.AutoMigrate {
		logger.Info("applying schema migrations")

		err := repository.Migrate(cfg.DB.DSN)
		if err != nil {
			return err
		}
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	holdRepo := repository.NewPostgresHoldRepository(db)
	screeningRepo := repository.NewPostgresScreeningRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	roomRepo := repository.NewPostgresRoomRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	ticketTypeRepo := repository.NewPostgresTicketTypeRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
	renderer := pdf.NewTicketRenderer()

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		NewSessionManager(redisClient),
		holdRepo,
		screeningRepo,
		movieRepo,
		roomRepo,
		seatRepo,
		ticketTypeRepo,
		orderRepo,
		userRepo,
		renderer,
		smtpMailer,
	)

	return app.run()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	holdRepo domain.HoldRepository,
	screeningRepo domain.ScreeningRepository,
	movieRepo domain.MovieRepository,
	roomRepo domain.RoomRepository,
	seatRepo domain.SeatRepository,
	ticketTypeRepo domain.TicketTypeRepository,
	orderRepo domain.OrderRepository,
	userRepo domain.UserDirectory,
	renderer domain.TicketRenderer,
	appMailer mailer.Mailer,
) *Application {

	coordinator := booking.NewCoordinator(holdRepo, screeningRepo, movieRepo, ticketTypeRepo, cfg.Booking.HoldTTL)
	finalizer := booking.NewFinalizer(holdRepo, orderRepo, ticketTypeRepo, userRepo, screeningRepo, movieRepo, roomRepo, seatRepo, renderer, appMailer, logger)
	scheduler := booking.NewScheduler(screeningRepo, movieRepo, roomRepo, seatRepo, holdRepo, orderRepo, cfg.Booking.CleaningBuffer)
	sweeper := booking.NewSweeper(holdRepo, cfg.Booking.SweepInterval, logger)

	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		sessionManager: sessionManager,
		coordinator:    coordinator,
		finalizer:      finalizer,
		scheduler:      scheduler,
		sweeper:        sweeper,
	}
}

func newLogger(cfg Config) *slog.Logger {
	textHandler := slog.NewTextHandler(os.Stdout, nil)

	if cfg.OtelCollectorUrl == "" {
		return slog.New(textHandler)
	}

	otelHandler := otelslog.NewHandler("cinema-reservation-api")

	return slog.New(NewMultiHandler(textHandler, otelHandler))
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	sweeperCtx, cancelSweeper := context.WithCancel(context.Background())
	defer cancelSweeper()

	app.sweeper.Start(sweeperCtx)

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		app.sweeper.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
