package receipt

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"receiptpoints/internal/money"
)

// Draft is a validated, not-yet-persisted receipt. Amounts keep their
// exact decimal form; normalization to cents happens at intake.
type Draft struct {
	Retailer     string
	PurchaseDate time.Time
	PurchaseTime time.Time
	Total        decimal.Decimal
	Items        []DraftItem
}

type DraftItem struct {
	Description string
	Price       decimal.Decimal
}

// Pointer fields distinguish an absent key from a zero value; an empty
// retailer string is valid, a missing retailer key is not.
type payload struct {
	Retailer     *string        `json:"retailer"`
	PurchaseDate *string        `json:"purchaseDate"`
	PurchaseTime *string        `json:"purchaseTime"`
	Total        *money.Amount  `json:"total"`
	Items        *[]itemPayload `json:"items"`
}

type itemPayload struct {
	ShortDescription *string       `json:"shortDescription"`
	Price            *money.Amount `json:"price"`
}

// ParsePayload decodes and validates a submitted receipt. It returns a
// *ValidationError when the body is not well-formed JSON, a required
// field is absent, or a value cannot be coerced to its expected type.
// Unknown fields are ignored.
func ParsePayload(raw []byte) (*Draft, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, invalid(typeErr.Field, "unexpected "+typeErr.Value)
		}

		return nil, invalid("", "malformed payload")
	}

	switch {
	case p.Retailer == nil:
		return nil, invalid("retailer", "required")
	case p.PurchaseDate == nil:
		return nil, invalid("purchaseDate", "required")
	case p.PurchaseTime == nil:
		return nil, invalid("purchaseTime", "required")
	case p.Total == nil:
		return nil, invalid("total", "required")
	case p.Items == nil:
		return nil, invalid("items", "required")
	}

	date, err := time.Parse(time.DateOnly, *p.PurchaseDate)
	if err != nil {
		return nil, invalid("purchaseDate", "not a YYYY-MM-DD date")
	}

	clock, err := time.Parse("15:04", *p.PurchaseTime)
	if err != nil {
		return nil, invalid("purchaseTime", "not a 24-hour HH:MM time")
	}

	draft := &Draft{
		Retailer:     *p.Retailer,
		PurchaseDate: date,
		PurchaseTime: clock,
		Total:        p.Total.Decimal,
	}

	for _, it := range *p.Items {
		if it.ShortDescription == nil {
			return nil, invalid("items.shortDescription", "required")
		}

		if it.Price == nil {
			return nil, invalid("items.price", "required")
		}

		draft.Items = append(draft.Items, DraftItem{
			Description: *it.ShortDescription,
			Price:       it.Price.Decimal,
		})
	}

	return draft, nil
}
