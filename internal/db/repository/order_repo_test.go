package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderNumber(t *testing.T) {
	tests := []struct {
		seq  int64
		want string
	}{
		{1, "LD0001"},
		{42, "LD0042"},
		{9999, "LD9999"},
		{10000, "LD10000"},
		{123456, "LD123456"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatOrderNumber(tt.seq))
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ana", "ana"},
		{"100%", `100\%`},
		{"LD_0001", `LD\_0001`},
		{`a\b`, `a\\b`},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.in))
	}
}
