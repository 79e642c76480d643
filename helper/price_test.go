package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckinTotal(t *testing.T) {
	// 2 hours for 3 pax at $15 first hour, $5 subsequent: (15 + 5) * 3.
	assert.Equal(t, 60.0, CheckinTotal(15, 5, 2, 3))

	// Single hour never charges the subsequent rate.
	assert.Equal(t, 15.0, CheckinTotal(15, 5, 1, 1))
	assert.Equal(t, 75.0, CheckinTotal(15, 5, 1, 5))

	// Long stays accumulate the subsequent rate only.
	assert.Equal(t, 30.0, CheckinTotal(15, 5, 4, 1))
}

func TestExtensionTotal(t *testing.T) {
	// 2 seats, 1 hour, $5/hour.
	assert.Equal(t, 10.0, ExtensionTotal(5, 2, 1))
	assert.Equal(t, 45.0, ExtensionTotal(5, 3, 3))
	assert.Equal(t, 0.0, ExtensionTotal(0, 4, 2), "free extension prices to zero, not an error here")
}
