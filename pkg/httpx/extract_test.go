package httpx

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractBearer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{"well-formed", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"no header", "", "", false},
		{"scheme only", "Bearer", "", false},
		{"scheme with trailing space only", "Bearer ", "", false},
		{"lowercase scheme", "bearer abc.def.ghi", "", false},
		{"uppercase scheme", "BEARER abc.def.ghi", "", false},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", false},
		{"double space separator", "Bearer  abc.def.ghi", "", false},
		{"tab separator", "Bearer\tabc.def.ghi", "", false},
		{"embedded whitespace", "Bearer abc def", "", false},
		{"token only", "abc.def.ghi", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			token, ok := ExtractBearer(r)
			require.Equal(t, tc.wantOK, ok)
			require.Equal(t, tc.wantToken, token)
		})
	}
}

func TestExtractTokenCustomScheme(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Token abc123")

	token, ok := ExtractToken(r, "Token")
	require.True(t, ok)
	require.Equal(t, "abc123", token)

	_, ok = ExtractBearer(r)
	require.False(t, ok)
}
