package utils_test

import (
	"testing"

	"github.com/MikeRez0/ypcheckout/internal/core/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateLuhn(t *testing.T) {
	tests := []struct {
		number string
		valid  bool
	}{
		{"79927398713", true},
		{"12345678903", true},
		{"125", true},
		{"79927398710", false},
		{"123", false},
		{"7", false},
		{"12a5", false},
	}
	for _, test := range tests {
		t.Run(test.number, func(t *testing.T) {
			err := utils.ValidateLuhn(test.number)
			if test.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestOrderNumber(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := uuid.New()
		number := utils.OrderNumber(id)
		assert.Len(t, number, 13)
		assert.NoError(t, utils.ValidateLuhn(number))
		assert.Equal(t, number, utils.OrderNumber(id))
	}
}
