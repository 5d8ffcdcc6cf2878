package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    ServiceCategory
		wantErr bool
	}{
		{"Plumbing", CategoryPlumbing, false},
		{"plumbing", CategoryPlumbing, false},
		{"CLEANING", CategoryCleaning, false},
		{"  Gardening  ", CategoryGardening, false},
		{"electrical", CategoryElectrical, false},
		{"Welding", "", true},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				code, ok := CodeOf(err)
				require.True(t, ok)
				assert.Equal(t, CodeValidation, code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllCategories_ReturnsCopy(t *testing.T) {
	first := AllCategories()
	first[0] = "Mutated"

	second := AllCategories()
	assert.Equal(t, CategoryCleaning, second[0])
}
