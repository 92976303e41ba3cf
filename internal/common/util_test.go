package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 24
	buf := GenerateRandByteArray(n)
	if len(buf) != n {
		t.Fatalf("expected length %d, got %d", n, len(buf))
	}
}

func TestGenerateRandByteArray_EntropyHint(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	if bytes.Equal(a, b) {
		t.Logf("warning: two GenerateRandByteArray(32) results are identical; extremely unlikely")
	}
}

func TestParseBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{name: "bearer scheme", header: "Bearer abc.def.ghi", want: "abc.def.ghi", wantOK: true},
		{name: "lower-case scheme", header: "bearer abc", want: "abc", wantOK: true},
		{name: "raw token", header: "abc.def.ghi", want: "abc.def.ghi", wantOK: true},
		{name: "surrounding spaces", header: "  Bearer   abc  ", want: "abc", wantOK: true},
		{name: "empty", header: "", wantOK: false},
		{name: "spaces only", header: "   ", wantOK: false},
		{name: "scheme without token", header: "Bearer", wantOK: false},
		{name: "scheme with blank token", header: "Bearer    ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBearer(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
