package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

type PostgresTicketTypeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketTypeRepository(db *pgxpool.Pool) *PostgresTicketTypeRepository {
	return &PostgresTicketTypeRepository{
		db: db,
	}
}

func (p *PostgresTicketTypeRepository) GetAll(ctx context.Context) ([]domain.TicketType, error) {
	query := `
		SELECT id, name, price
		FROM ticket_types
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ticketTypes := make([]domain.TicketType, 0)

	for rows.Next() {
		var ticketType domain.TicketType

		err := rows.Scan(&ticketType.ID, &ticketType.Name, &ticketType.Price)
		if err != nil {
			return nil, err
		}

		ticketTypes = append(ticketTypes, ticketType)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ticketTypes, nil
}

func (p *PostgresTicketTypeRepository) GetById(ctx context.Context, id int) (*domain.TicketType, error) {
	var ticketType domain.TicketType

	err := p.db.QueryRow(ctx, `SELECT id, name, price FROM ticket_types WHERE id = $1`, id).
		Scan(&ticketType.ID, &ticketType.Name, &ticketType.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &ticketType, nil
}
