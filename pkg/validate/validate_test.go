package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const hash = "4f6c3b1a2e9d8c7b6a5f4e3d2c1b0a99887766554433221100ffeeddccbbaa00"

func TestIsTxHash(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "Lower hex", input: hash, valid: true},
		{name: "Upper hex with prefix", input: "0x" + strings.ToUpper(hash), valid: true},
		{name: "Too short", input: hash[:63], valid: false},
		{name: "Not hex", input: strings.Repeat("z", 64), valid: false},
		{name: "Empty", input: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsTxHash(tt.input))
		})
	}
}

func TestNormalizeTxHash(t *testing.T) {
	assert.Equal(t, hash, NormalizeTxHash(" 0x"+strings.ToUpper(hash)+" "))
	assert.Equal(t, hash, NormalizeTxHash(hash))
}

func TestStruct(t *testing.T) {
	type request struct {
		PaymentID string `json:"payment_id" validate:"required,uuid"`
		Hash      string `json:"transaction_hash" validate:"omitempty,txhash"`
		PlanID    int    `json:"plan_id" validate:"gt=0"`
	}

	tests := []struct {
		name    string
		input   request
		wantErr string
	}{
		{
			name:  "Valid",
			input: request{PaymentID: "0b8f3c1e-2f4e-4a43-8d4e-2b0f3f1c9a11", Hash: hash, PlanID: 1},
		},
		{
			name:  "Hash optional",
			input: request{PaymentID: "0b8f3c1e-2f4e-4a43-8d4e-2b0f3f1c9a11", PlanID: 1},
		},
		{
			name:    "Every failing field reported",
			input:   request{PaymentID: "nope", Hash: "abc", PlanID: 0},
			wantErr: "PaymentID failed on 'uuid'; Hash failed on 'txhash'; PlanID failed on 'gt'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
