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

type PostgresHoldRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHoldRepository(db *pgxpool.Pool) *PostgresHoldRepository {
	return &PostgresHoldRepository{
		db: db,
	}
}

// TryAcquire locks the seat's row for the duration of the transaction, so
// concurrent acquire attempts on the same seat serialize instead of racing.
// Inside the lock it verifies that no unexpired hold and no sold ticket
// exists for the (seat, screening) pair before inserting the hold. On
// conflict it returns domain.ErrSeatAlreadyReserved with no side effects.
func (p *PostgresHoldRepository) TryAcquire(
	ctx context.Context,
	seatID, screeningID, userID int,
	now time.Time,
	ttl time.Duration) (*domain.Hold, error) {

	hold := domain.Hold{
		SeatID:      seatID,
		ScreeningID: screeningID,
		UserID:      userID,
		ExpiresAt:   now.Add(ttl),
	}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var lockedSeatID int

		err := tx.QueryRow(ctx, `SELECT id FROM seats WHERE id = $1 FOR UPDATE`, seatID).Scan(&lockedSeatID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		query := `
			SELECT
				EXISTS (
					SELECT 1 FROM seat_holds
					WHERE seat_id = $1 AND screening_id = $2 AND expires_at > $3
				),
				EXISTS (
					SELECT 1 FROM tickets
					WHERE seat_id = $1 AND screening_id = $2
				)
		`

		var held, sold bool

		err = tx.QueryRow(ctx, query, seatID, screeningID, now).Scan(&held, &sold)
		if err != nil {
			return err
		}

		if held || sold {
			return domain.ErrSeatAlreadyReserved
		}

		query = `
			INSERT INTO seat_holds (seat_id, screening_id, user_id, expires_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`

		err = tx.QueryRow(ctx, query, seatID, screeningID, userID, hold.ExpiresAt).Scan(&hold.ID, &hold.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
				return domain.ErrRecordNotFound
			}

			return err
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &hold, nil
}

// Release deletes every hold matching the (user, seat, screening) triple.
// Duplicate holds for the same triple are tolerated and removed together.
func (p *PostgresHoldRepository) Release(ctx context.Context, seatID, screeningID, userID int) error {
	query := `
		DELETE FROM seat_holds
		WHERE seat_id = $1 AND screening_id = $2 AND user_id = $3
	`

	tag, err := p.db.Exec(ctx, query, seatID, screeningID, userID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresHoldRepository) Extend(ctx context.Context, holdIDs []int, newExpiry time.Time) error {
	if len(holdIDs) == 0 {
		return nil
	}

	query := `
		UPDATE seat_holds
		SET expires_at = $2
		WHERE id = ANY($1)
	`

	_, err := p.db.Exec(ctx, query, holdIDs, newExpiry)

	return err
}

func (p *PostgresHoldRepository) FindActiveByUser(ctx context.Context, userID int, now time.Time) ([]domain.Hold, error) {
	query := `
		SELECT id, seat_id, screening_id, user_id, expires_at, created_at
		FROM seat_holds
		WHERE user_id = $1 AND expires_at > $2
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, userID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHolds(rows)
}

func (p *PostgresHoldRepository) FindActiveByScreening(ctx context.Context, screeningID int, now time.Time) ([]domain.Hold, error) {
	query := `
		SELECT id, seat_id, screening_id, user_id, expires_at, created_at
		FROM seat_holds
		WHERE screening_id = $1 AND expires_at > $2
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, screeningID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHolds(rows)
}

func (p *PostgresHoldRepository) FindActiveByUserAndSeats(
	ctx context.Context,
	userID int,
	seatIDs []int,
	now time.Time) ([]domain.Hold, error) {

	query := `
		SELECT id, seat_id, screening_id, user_id, expires_at, created_at
		FROM seat_holds
		WHERE user_id = $1 AND seat_id = ANY($2) AND expires_at > $3
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, userID, seatIDs, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHolds(rows)
}

// DeleteExpired removes every hold whose expiry has passed and returns the
// number of deleted rows. The delete is self-contained and idempotent; a
// failed sweep is simply retried on the next tick.
func (p *PostgresHoldRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM seat_holds WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func scanHolds(rows pgx.Rows) ([]domain.Hold, error) {
	holds := make([]domain.Hold, 0)

	for rows.Next() {
		var hold domain.Hold

		err := rows.Scan(
			&hold.ID,
			&hold.SeatID,
			&hold.ScreeningID,
			&hold.UserID,
			&hold.ExpiresAt,
			&hold.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		holds = append(holds, hold)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return holds, nil
}
