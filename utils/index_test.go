package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.0, RoundMoney(10))
	assert.Equal(t, 0.3, RoundMoney(0.1+0.2))
	assert.Equal(t, 12.34, RoundMoney(12.341))
	assert.Equal(t, 12.35, RoundMoney(12.349))
}

func TestCalculateGrowth(t *testing.T) {
	assert.Equal(t, 0.0, CalculateGrowth(0, 0))
	assert.Equal(t, 100.0, CalculateGrowth(50, 0))
	assert.Equal(t, 50.0, CalculateGrowth(150, 100))
	assert.Equal(t, -25.0, CalculateGrowth(75, 100))
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	if assert.NotNil(t, StringPtr("x")) {
		assert.Equal(t, "x", *StringPtr("x"))
	}
}
