package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ProductID
		wantErr bool
	}{
		{name: "plain", input: "42", want: 42},
		{name: "surrounding spaces", input: " 7 ", want: 7},
		{name: "empty", input: "", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "decimal", input: "1.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProductID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidProductID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductFormattedName(t *testing.T) {
	p := Product{ID: 42, Name: "Tote bag"}
	assert.Equal(t, "Tote bag (#42)", p.FormattedName())
	assert.Equal(t, "42", p.ID.String())
	assert.True(t, ProductID(0).IsZero())
}
