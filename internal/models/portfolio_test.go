package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01}, // half rounds up, not banker's
		{1.004, 1.0},
		{2.675, 2.68},
		{-1.005, -1.01}, // away from zero on negatives
		{0, 0},
		{10.0, 10.0},
		{0.3333333, 0.33},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
}

func TestRound4(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.00005, 1.0001},
		{1.00004, 1.0},
		{4.21567, 4.2157},
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round4(tt.in), "Round4(%v)", tt.in)
	}
}
