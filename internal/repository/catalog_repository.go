package repository

import (
	"context"
	"database/sql"

	"github.com/cinehub/ticket-booking/internal/model"
)

// CatalogRepo reads the ticket class and meal reference catalogs.  The
// catalogs are seeded outside this service; booking requests reference
// them by ID.
type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// ListTicketTypes returns the full ticket class catalog.
func (r *CatalogRepo) ListTicketTypes(ctx context.Context) ([]model.TicketType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price_units FROM ticket_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TicketType
	for rows.Next() {
		var t model.TicketType
		if err := rows.Scan(&t.ID, &t.Name, &t.PriceUnits); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListMeals returns the full meal add-on catalog.
func (r *CatalogRepo) ListMeals(ctx context.Context) ([]model.Meal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price_units FROM meals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Meal
	for rows.Next() {
		var m model.Meal
		if err := rows.Scan(&m.ID, &m.Name, &m.PriceUnits); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
