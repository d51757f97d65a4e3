package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"receiptpoints/internal/receipt"
)

const receiptBucket = "receipts"

// Bolt is an embedded single-file store. It lets the service run without
// a Postgres instance; every receipt is one JSON record keyed by ID.
type Bolt struct {
	db *bbolt.DB
}

// NewBolt opens (or creates) the database file and ensures the receipts
// bucket exists.
func NewBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(receiptBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

type boltRecord struct {
	ID           string           `json:"id"`
	Retailer     string           `json:"retailer"`
	PurchaseDate time.Time        `json:"purchase_date"`
	PurchaseTime time.Time        `json:"purchase_time"`
	TotalCents   int64            `json:"total_cents"`
	Items        []boltItemRecord `json:"items"`
	CreatedAt    time.Time        `json:"created_at"`
}

type boltItemRecord struct {
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

// CreateReceipt persists a receipt only if its ID is absent. Bolt
// serializes Update transactions, so the existence check and the write
// are atomic and a racing duplicate fails with receipt.ErrDuplicateID.
func (b *Bolt) CreateReceipt(_ context.Context, r *receipt.Receipt) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(receiptBucket))

		if bucket.Get([]byte(r.ID)) != nil {
			return receipt.ErrDuplicateID
		}

		data, err := json.Marshal(toBoltRecord(r))
		if err != nil {
			return fmt.Errorf("marshaling receipt: %w", err)
		}

		return bucket.Put([]byte(r.ID), data)
	})
}

// GetReceipt loads a receipt by ID, failing with receipt.ErrNotFound
// when the key is absent.
func (b *Bolt) GetReceipt(_ context.Context, id string) (*receipt.Receipt, error) {
	var rec boltRecord

	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(receiptBucket)).Get([]byte(id))
		if data == nil {
			return receipt.ErrNotFound
		}

		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}

	return fromBoltRecord(&rec), nil
}

func toBoltRecord(r *receipt.Receipt) *boltRecord {
	rec := &boltRecord{
		ID:           r.ID,
		Retailer:     r.Retailer,
		PurchaseDate: r.PurchaseDate,
		PurchaseTime: r.PurchaseTime,
		TotalCents:   r.TotalCents,
		CreatedAt:    r.CreatedAt,
	}

	for _, it := range r.Items {
		rec.Items = append(rec.Items, boltItemRecord{Description: it.Description, PriceCents: it.PriceCents})
	}

	return rec
}

func fromBoltRecord(rec *boltRecord) *receipt.Receipt {
	r := &receipt.Receipt{
		ID:           rec.ID,
		Retailer:     rec.Retailer,
		PurchaseDate: rec.PurchaseDate,
		PurchaseTime: rec.PurchaseTime,
		TotalCents:   rec.TotalCents,
		CreatedAt:    rec.CreatedAt,
	}

	for _, it := range rec.Items {
		r.Items = append(r.Items, receipt.Item{Description: it.Description, PriceCents: it.PriceCents})
	}

	return r
}
