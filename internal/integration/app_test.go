package integration_test

import (
	"log/slog"
	"os"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinoteka/cinema-reservation-system/internal/app"
	"github.com/kinoteka/cinema-reservation-system/internal/mailer"
	"github.com/kinoteka/cinema-reservation-system/internal/pdf"
	"github.com/kinoteka/cinema-reservation-system/internal/repository"
	appvalidator "github.com/kinoteka/cinema-reservation-system/internal/validator"
)

type TestApp struct {
	App      *app.Application
	DB       *pgxpool.Pool
	Holds    *repository.PostgresHoldRepository
	Sessions *scs.SessionManager
	Mailer   *mailer.RecordingMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	recordingMailer := mailer.NewRecordingMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	holdRepo := repository.NewPostgresHoldRepository(db)
	screeningRepo := repository.NewPostgresScreeningRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	roomRepo := repository.NewPostgresRoomRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	ticketTypeRepo := repository.NewPostgresTicketTypeRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		sessionManager,
		holdRepo,
		screeningRepo,
		movieRepo,
		roomRepo,
		seatRepo,
		ticketTypeRepo,
		orderRepo,
		userRepo,
		pdf.NewTicketRenderer(),
		recordingMailer,
	)

	return &TestApp{
		App:      application,
		DB:       db,
		Holds:    holdRepo,
		Sessions: sessionManager,
		Mailer:   recordingMailer,
	}, nil
}
