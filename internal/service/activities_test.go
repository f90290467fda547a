package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		expected  int64
		want      float64
	}{
		{"empty denominator", 0, 0, 0},
		{"nothing completed", 0, 10, 0},
		{"one third", 1, 3, 33.3},
		{"two thirds", 2, 3, 66.7},
		{"everything", 3, 3, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, completionRate(tt.completed, tt.expected), 0.001)
		})
	}
}
