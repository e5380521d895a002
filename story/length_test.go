package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		input     string
		want      Length
		wantRange string
	}{
		{input: "short", want: Short, wantRange: "50-100 words"},
		{input: "medium", want: Medium, wantRange: "100-200 words"},
		{input: "long", want: Long, wantRange: "200-300 words"},
		{input: "", want: Medium, wantRange: "100-200 words"},
		{input: "epic", want: Medium, wantRange: "100-200 words"},
		{input: "LONG", want: Medium, wantRange: "100-200 words"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := ParseLength(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantRange, got.WordRange())
		})
	}
}
