package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeReturn(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "/"},
		{"/", "/"},
		{"/judges", "/judges"},
		{"/reports/caseReports/x?a=1", "/reports/caseReports/x?a=1"},
		{"judges", "/"},
		{"https://evil.example", "/"},
		{"//evil.example", "/"},
		{"/\\evil.example", "/"},
		{"/judges\r\nSet-Cookie: x=1", "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeReturn(tt.in), "input %q", tt.in)
	}
}
