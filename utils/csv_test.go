package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSVEscape(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Haircut", "Haircut"},
		{"empty", "", ""},
		{"comma", "Smith, Jr.", `"Smith, Jr."`},
		{"quote", `the "usual"`, `"the ""usual"""`},
		{"newline", "line one\nline two", "\"line one\nline two\""},
		{"comma and quote", `a,"b"`, `"a,""b"""`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CSVEscape(tc.in))
		})
	}
}
