package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"receiptpoints/internal/receipt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS receipts (
		id            TEXT PRIMARY KEY,
		retailer      TEXT NOT NULL,
		purchase_date DATE NOT NULL,
		purchase_time TEXT NOT NULL,
		total_cents   BIGINT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS receipt_items (
		receipt_id  TEXT NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
		position    INT NOT NULL,
		description TEXT NOT NULL,
		price_cents BIGINT NOT NULL,
		PRIMARY KEY (receipt_id, position)
	);
`

// EnsureSchema creates the receipt tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// CreateReceipt inserts a receipt and its items in one transaction.
// A duplicate ID is detected at commit time via ON CONFLICT DO NOTHING
// and reported as receipt.ErrDuplicateID; nothing is written in that case.
func (s *Store) CreateReceipt(ctx context.Context, r *receipt.Receipt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO receipts (id, retailer, purchase_date, purchase_time, total_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		r.ID, r.Retailer, r.PurchaseDate, r.PurchaseTime.Format("15:04"), r.TotalCents, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating receipt: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("creating receipt: %w", err)
	}

	if inserted == 0 {
		return receipt.ErrDuplicateID
	}

	for i, it := range r.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO receipt_items (receipt_id, position, description, price_cents)
			VALUES ($1, $2, $3, $4)`,
			r.ID, i, it.Description, it.PriceCents,
		)
		if err != nil {
			return fmt.Errorf("creating receipt item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing receipt: %w", err)
	}

	return nil
}

// GetReceipt loads a receipt with all its items.
func (s *Store) GetReceipt(ctx context.Context, id string) (*receipt.Receipt, error) {
	var (
		r       receipt.Receipt
		timeStr string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, retailer, purchase_date, purchase_time, total_cents, created_at
		FROM receipts
		WHERE id = $1`, id,
	).Scan(&r.ID, &r.Retailer, &r.PurchaseDate, &timeStr, &r.TotalCents, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, receipt.ErrNotFound
		}

		return nil, fmt.Errorf("getting receipt: %w", err)
	}

	r.PurchaseTime, err = time.Parse("15:04", timeStr)
	if err != nil {
		return nil, fmt.Errorf("parsing purchase time: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT description, price_cents
		FROM receipt_items
		WHERE receipt_id = $1
		ORDER BY position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("listing receipt items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it receipt.Item
		if err := rows.Scan(&it.Description, &it.PriceCents); err != nil {
			return nil, fmt.Errorf("scanning receipt item: %w", err)
		}

		r.Items = append(r.Items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing receipt items: %w", err)
	}

	return &r, nil
}
