package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionID(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "20240315_093005", NewSessionID(now))
}

func TestNewSessionID_SortableOrder(t *testing.T) {
	// Lexicographic order of ids must match chronological order.
	earlier := NewSessionID(time.Date(2024, 3, 15, 9, 30, 5, 0, time.UTC))
	later := NewSessionID(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
	assert.Less(t, earlier, later)
}
