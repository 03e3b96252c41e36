package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVendor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "reference and masked card",
			input: "PAYMENT REF:AB123456 ****1234",
			want:  "Payment",
		},
		{
			name:  "long digit run",
			input: "TRANSFER 12345678 ACME LTD",
			want:  "Transfer Acme Ltd",
		},
		{
			name:  "embedded date",
			input: "CARD PURCHASE 05/03/2024 COFFEE SHOP",
			want:  "Card Purchase Coffee Shop",
		},
		{
			name:  "bank jargon abbreviations",
			input: "DD BRITISH GAS FT",
			want:  "British Gas",
		},
		{
			name:  "jargon only as whole words",
			input: "DDRAIG SOFTWARE",
			want:  "Ddraig Software",
		},
		{
			name:  "asterisk runs collapsed",
			input: "AMZN***MARKETPLACE",
			want:  "Amzn Marketplace",
		},
		{
			name:  "title cased",
			input: "coffee shop madrid",
			want:  "Coffee Shop Madrid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeVendor(tt.input))
		})
	}
}

func TestNormalizeVendorNeverEmpty(t *testing.T) {
	// A description made entirely of noise comes back unchanged.
	assert.Equal(t, "REF:XYZ999", NormalizeVendor("REF:XYZ999"))
	assert.Equal(t, "12345678", NormalizeVendor("12345678"))
	assert.Equal(t, "", NormalizeVendor(""))
}
