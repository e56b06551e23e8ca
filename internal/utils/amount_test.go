package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    string
		wantErr bool
	}{
		{name: "float", input: 12.5, want: "12.5"},
		{name: "int", input: 40, want: "40"},
		{name: "json number", input: json.Number("99.99"), want: "99.99"},
		{name: "plain string", input: "120.00", want: "120"},
		{name: "currency string", input: "$1,234.50", want: "1234.5"},
		{name: "negative string", input: "-5", want: "-5"},
		{name: "zero string", input: "0", want: "0"},
		{name: "letters only", input: "abc", wantErr: true},
		{name: "two dots", input: "1.2.3", wantErr: true},
		{name: "nil", input: nil, wantErr: true},
		{name: "bool", input: true, wantErr: true},
		{name: "NaN", input: math.NaN(), wantErr: true},
		{name: "infinity", input: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}
