package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{WholeBuffer, "whole-buffer"},
		{LineBuffered, "line-buffered"},
		{Mode(7), "Mode(7)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.String())
	}
}
