package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hotel_pricer/internal/domain"
)

// cells per INSERT statement
const batchSize = 200

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// SaveCells stores the final cells of one run in a single transaction.
func (r *Repo) SaveCells(ctx context.Context, runID string, cells []domain.PriceCell) error {
	if len(cells) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(cells); start += batchSize {
		end := min(start+batchSize, len(cells))
		batch := cells[start:end]

		rows := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*10)
		for _, c := range batch {
			rows = append(rows, insertCellsRow)
			args = append(args,
				runID,
				c.Hotel.HotelNo,
				c.Hotel.HotelName,
				c.StayDate.Format("2006-01-02"),
				c.Adults,
				c.Category.String(),
				c.Found,
				c.Price(),
				valStr(c.Plan.PlanName),
				valStr(c.Plan.RoomName),
			)
		}
		q := insertCellsPrefix + strings.Join(rows, ",") + insertCellsOnDup
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert price cells %d-%d: %w", start, end, err)
		}
	}
	return tx.Commit()
}

// ListPrices returns the most recent stored cells for a hotel.
func (r *Repo) ListPrices(ctx context.Context, hotelNo string, limit int) ([]domain.StoredPrice, error) {
	rows, err := r.db.QueryContext(ctx, listPricesSQL, hotelNo, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StoredPrice
	for rows.Next() {
		var (
			sp                 domain.StoredPrice
			planName, roomName sql.NullString
		)
		if err := rows.Scan(
			&sp.RunID,
			&sp.HotelNo,
			&sp.HotelName,
			&sp.StayDate,
			&sp.Adults,
			&sp.Category,
			&sp.Found,
			&sp.TotalCharge,
			&planName,
			&roomName,
			&sp.CreatedAt,
		); err != nil {
			return nil, err
		}
		sp.PlanName = planName.String
		sp.RoomName = roomName.String
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
