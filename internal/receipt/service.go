package receipt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"receiptpoints/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=receipt
type Repository interface {
	// CreateReceipt persists a receipt and its items atomically. It must
	// fail with ErrDuplicateID when the ID is already committed, so that
	// two concurrent intakes racing on the same candidate ID are caught
	// at commit time.
	CreateReceipt(ctx context.Context, r *Receipt) error
	GetReceipt(ctx context.Context, id string) (*Receipt, error)
}

// IDGenerator produces candidate receipt IDs.
type IDGenerator interface {
	Generate() string
}

type uuidGenerator struct{}

func (uuidGenerator) Generate() string {
	return uuid.NewString()
}

// maxIDAttempts bounds the collision-retry loop. Exhausting it with
// UUID-sized tokens means the store or generator is broken.
const maxIDAttempts = 8

type Service struct {
	repo Repository
	ids  IDGenerator
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, ids: uuidGenerator{}, now: time.Now}
}

// NewServiceWithDeps constructs a Service with a custom ID generator and
// clock, for tests.
func NewServiceWithDeps(repo Repository, ids IDGenerator, now func() time.Time) *Service {
	return &Service{repo: repo, ids: ids, now: now}
}

// Process validates a submitted payload, normalizes its amounts, assigns
// a fresh unique ID and persists the receipt. On validation failure it
// returns a *ValidationError and writes nothing.
func (s *Service) Process(ctx context.Context, raw []byte) (string, error) {
	draft, err := ParsePayload(raw)
	if err != nil {
		return "", err
	}

	rec := &Receipt{
		Retailer:     draft.Retailer,
		PurchaseDate: draft.PurchaseDate,
		PurchaseTime: draft.PurchaseTime,
		TotalCents:   money.ToCents(draft.Total),
		CreatedAt:    s.now().UTC(),
	}

	for _, it := range draft.Items {
		rec.Items = append(rec.Items, Item{
			Description: it.Description,
			PriceCents:  money.ToCents(it.Price),
		})
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		rec.ID = s.ids.Generate()

		err := s.repo.CreateReceipt(ctx, rec)
		if errors.Is(err, ErrDuplicateID) {
			continue
		}

		if err != nil {
			return "", fmt.Errorf("creating receipt: %w", err)
		}

		return rec.ID, nil
	}

	return "", fmt.Errorf("generating receipt id: gave up after %d collisions", maxIDAttempts)
}

// Points looks up a receipt by ID and scores it. Fails with ErrNotFound
// when no receipt exists for the ID.
func (s *Service) Points(ctx context.Context, id string) (int64, error) {
	rec, err := s.repo.GetReceipt(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, err
		}

		return 0, fmt.Errorf("getting receipt: %w", err)
	}

	return Score(rec), nil
}
