package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

type PostgresScreeningRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreeningRepository(db *pgxpool.Pool) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{
		db: db,
	}
}

func (p *PostgresScreeningRepository) GetById(ctx context.Context, id int) (*domain.Screening, error) {
	query := `
		SELECT id, movie_id, room_id, start_time, end_time
		FROM screenings
		WHERE id = $1
	`

	var screening domain.Screening

	err := p.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.RoomID,
		&screening.StartTime,
		&screening.EndTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &screening, nil
}

func (p *PostgresScreeningRepository) GetAllForList(ctx context.Context) ([]domain.ScreeningListItem, error) {
	query := `
		SELECT s.id, m.title, r.name, s.start_time, s.end_time
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		JOIN rooms r ON s.room_id = r.id
		ORDER BY s.start_time
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.ScreeningListItem, 0)

	for rows.Next() {
		var item domain.ScreeningListItem

		err := rows.Scan(&item.ID, &item.MovieTitle, &item.RoomName, &item.StartTime, &item.EndTime)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (p *PostgresScreeningRepository) Create(ctx context.Context, screening *domain.Screening) error {
	query := `
		INSERT INTO screenings (movie_id, room_id, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := p.db.QueryRow(
		ctx,
		query,
		screening.MovieID,
		screening.RoomID,
		screening.StartTime,
		screening.EndTime).Scan(&screening.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresScreeningRepository) Update(ctx context.Context, screening *domain.Screening) error {
	query := `
		UPDATE screenings
		SET movie_id = $2, room_id = $3, start_time = $4, end_time = $5
		WHERE id = $1
	`

	tag, err := p.db.Exec(
		ctx,
		query,
		screening.ID,
		screening.MovieID,
		screening.RoomID,
		screening.StartTime,
		screening.EndTime)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// ExistsOverlapping uses strict inequalities on both bounds, so a screening
// that merely touches the padded window does not count as a collision.
func (p *PostgresScreeningRepository) ExistsOverlapping(
	ctx context.Context,
	roomID int,
	windowStart, windowEnd time.Time,
	excludeID int) (bool, error) {

	query := `
		SELECT EXISTS (
			SELECT 1 FROM screenings
			WHERE room_id = $1 AND id != $4 AND start_time < $3 AND end_time > $2
		)
	`

	var exists bool

	err := p.db.QueryRow(ctx, query, roomID, windowStart, windowEnd, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (p *PostgresScreeningRepository) FindOverlapping(
	ctx context.Context,
	roomID int,
	windowStart, windowEnd time.Time,
	excludeID int) ([]domain.Collision, error) {

	query := `
		SELECT s.id, m.title, r.name, s.start_time, s.end_time
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		JOIN rooms r ON s.room_id = r.id
		WHERE s.room_id = $1 AND s.id != $4 AND s.start_time < $3 AND s.end_time > $2
		ORDER BY s.start_time
	`

	rows, err := p.db.Query(ctx, query, roomID, windowStart, windowEnd, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collisions := make([]domain.Collision, 0)

	for rows.Next() {
		var collision domain.Collision

		err := rows.Scan(
			&collision.ScreeningID,
			&collision.MovieTitle,
			&collision.RoomName,
			&collision.StartTime,
			&collision.EndTime,
		)
		if err != nil {
			return nil, err
		}

		collisions = append(collisions, collision)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return collisions, nil
}
