package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

// CreateWithTickets commits the order, its tickets, and the deletion of the
// consumed holds in one transaction. The tickets table carries a unique
// (screening_id, seat_id) constraint, so even if two finalize attempts for
// the same seat race, only one can commit.
func (p *PostgresOrderRepository) CreateWithTickets(
	ctx context.Context,
	order *domain.Order,
	consumedHoldIDs []int) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO orders (reference, user_id, total_cost)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`

		err := tx.QueryRow(ctx, query, order.Reference, order.UserID, order.TotalCost).
			Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(order.Tickets))
		for _, ticket := range order.Tickets {
			rows = append(rows, []any{
				order.ID,
				ticket.ScreeningID,
				ticket.SeatID,
				ticket.TicketTypeID,
				ticket.Price,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"tickets"},
			[]string{"order_id", "screening_id", "seat_id", "ticket_type_id", "price"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrSeatAlreadyReserved
			}

			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM seat_holds WHERE id = ANY($1)`, consumedHoldIDs)
		if err != nil {
			return err
		}

		// A missing hold means the sweeper or a concurrent finalize got
		// there first; abort so no ticket is sold without a backing hold.
		if tag.RowsAffected() != int64(len(consumedHoldIDs)) {
			return domain.ErrHoldExpired
		}

		return nil
	})
}

func (p *PostgresOrderRepository) GetWithTickets(ctx context.Context, orderID int) (*domain.Order, error) {
	query := `
		SELECT id, reference, user_id, total_cost, created_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order

	err := p.db.QueryRow(ctx, query, orderID).Scan(
		&order.ID,
		&order.Reference,
		&order.UserID,
		&order.TotalCost,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	tickets, err := p.retrieveTickets(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tickets of order %d: %w", orderID, err)
	}

	order.Tickets = tickets

	return &order, nil
}

func (p *PostgresOrderRepository) GetAllByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	query := `
		SELECT id, reference, user_id, total_cost, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)

	for rows.Next() {
		var order domain.Order

		err := rows.Scan(&order.ID, &order.Reference, &order.UserID, &order.TotalCost, &order.CreatedAt)
		if err != nil {
			return nil, err
		}

		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (p *PostgresOrderRepository) SoldSeatsByScreening(ctx context.Context, screeningID int) ([]int, error) {
	query := `
		SELECT seat_id
		FROM tickets
		WHERE screening_id = $1
	`

	rows, err := p.db.Query(ctx, query, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatIDs := make([]int, 0)

	for rows.Next() {
		var seatID int

		if err := rows.Scan(&seatID); err != nil {
			return nil, err
		}

		seatIDs = append(seatIDs, seatID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seatIDs, nil
}

func (p *PostgresOrderRepository) retrieveTickets(ctx context.Context, orderID int) ([]domain.Ticket, error) {
	query := `
		SELECT id, order_id, screening_id, seat_id, ticket_type_id, price
		FROM tickets
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		var ticket domain.Ticket

		err := rows.Scan(
			&ticket.ID,
			&ticket.OrderID,
			&ticket.ScreeningID,
			&ticket.SeatID,
			&ticket.TicketTypeID,
			&ticket.Price,
		)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
