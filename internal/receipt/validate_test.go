package receipt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receiptpoints/internal/receipt"
)

func TestParsePayload(t *testing.T) {
	type testCase struct {
		name    string
		raw     string
		wantErr bool
		check   func(t *testing.T, d *receipt.Draft)
	}

	tests := []testCase{
		{
			name: "Valid",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"total": "35.35",
				"items": [
					{"shortDescription": "Mountain Dew 12PK", "price": "6.49"}
				]
			}`,
			check: func(t *testing.T, d *receipt.Draft) {
				assert.Equal(t, "Target", d.Retailer)
				assert.Equal(t, 2022, d.PurchaseDate.Year())
				assert.Equal(t, 13, d.PurchaseTime.Hour())
				assert.Equal(t, "35.35", d.Total.String())
				require.Len(t, d.Items, 1)
				assert.Equal(t, "Mountain Dew 12PK", d.Items[0].Description)
				assert.Equal(t, "6.49", d.Items[0].Price.String())
			},
		},
		{
			name: "EmptyRetailerAndNoItems",
			raw: `{
				"retailer": "",
				"purchaseDate": "2022-01-02",
				"purchaseTime": "13:01",
				"total": "1.25",
				"items": []
			}`,
			check: func(t *testing.T, d *receipt.Draft) {
				assert.Empty(t, d.Retailer)
				assert.Empty(t, d.Items)
			},
		},
		{
			name: "NumericTotalAndPrices",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"total": 35.35,
				"items": [{"shortDescription": "Pepsi", "price": 1.25}]
			}`,
			check: func(t *testing.T, d *receipt.Draft) {
				assert.Equal(t, "35.35", d.Total.String())
			},
		},
		{
			name: "UnknownFieldsIgnored",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"total": "1.00",
				"items": [],
				"cashier": "Pat",
				"loyaltyCard": 12345
			}`,
			check: func(t *testing.T, d *receipt.Draft) {
				assert.Equal(t, "Target", d.Retailer)
			},
		},
		{
			name:    "MalformedJSON",
			raw:     `{"retailer": `,
			wantErr: true,
		},
		{
			name:    "NotAnObject",
			raw:     `[1, 2, 3]`,
			wantErr: true,
		},
		{
			name: "MissingRetailer",
			raw: `{
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"total": "1.00",
				"items": []
			}`,
			wantErr: true,
		},
		{
			name: "MissingItems",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"total": "1.00"
			}`,
			wantErr: true,
		},
		{
			name: "HourOutOfRange",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "38:00",
				"total": "1.00",
				"items": []
			}`,
			wantErr: true,
		},
		{
			name: "MinuteOutOfRange",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:61",
				"total": "1.00",
				"items": []
			}`,
			wantErr: true,
		},
		{
			name: "DateIsANumber",
			raw: `{
				"retailer": "Target",
				"purchaseDate": 20220101,
				"purchaseTime": "13:01",
				"total": "1.00",
				"items": []
			}`,
			wantErr: true,
		},
		{
			name: "DateNotACalendarDate",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-02-30",
				"purchaseTime": "13:01",
				"total": "1.00",
				"items": []
			}`,
			wantErr: true,
		},
		{
			name: "TotalNotANumber",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"total": "ten",
				"items": []
			}`,
			wantErr: true,
		},
		{
			name: "ItemDescriptionNotAString",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"total": "1.00",
				"items": [{"shortDescription": 12, "price": "1.00"}]
			}`,
			wantErr: true,
		},
		{
			name: "ItemMissingPrice",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"total": "1.00",
				"items": [{"shortDescription": "Pepsi"}]
			}`,
			wantErr: true,
		},
		{
			name: "ItemsNotAnArray",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"total": "1.00",
				"items": "none"
			}`,
			wantErr: true,
		},
		{
			name: "NegativeItemPriceAllowed",
			raw: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"total": "1.00",
				"items": [{"shortDescription": "Coupon", "price": "-0.50"}]
			}`,
			check: func(t *testing.T, d *receipt.Draft) {
				require.Len(t, d.Items, 1)
				assert.Equal(t, "-0.5", d.Items[0].Price.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := receipt.ParsePayload([]byte(tt.raw))

			if tt.wantErr {
				require.Error(t, err)

				var vErr *receipt.ValidationError
				assert.ErrorAs(t, err, &vErr)
				assert.Nil(t, d)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, d)

			if tt.check != nil {
				tt.check(t, d)
			}
		})
	}
}
