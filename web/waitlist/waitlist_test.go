package waitlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"plain address", "ada@example.com", true},
		{"dotted local part", "ada.lovelace@example.com", true},
		{"plus tag", "ada+waitlist@example.com", true},
		{"subdomain", "ada@mail.example.co.uk", true},
		{"empty", "", false},
		{"missing at", "ada.example.com", false},
		{"missing tld", "ada@example", false},
		{"numeric tld", "ada@example.123", false},
		{"single-letter tld", "ada@example.c", false},
		{"consecutive dots in local part", "ada..lovelace@example.com", false},
		{"leading dot in local part", ".ada@example.com", false},
		{"surrounding whitespace", " ada@example.com ", false},
		{"embedded space", "ada lovelace@example.com", false},
		{"hyphen-led domain label", "ada@-example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}

func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreAddCreatesEntry(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Add(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.True(t, created)

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStoreDuplicateAddSucceedsWithoutNewEntry(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(context.Background(), "ada@example.com")
	require.NoError(t, err)

	created, err := s.Add(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.False(t, created)

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStoreAddNormalizesCase(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(context.Background(), "Ada@Example.com")
	require.NoError(t, err)

	created, err := s.Add(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestMailerSendsBearerAuthorizedRequest(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMailer(srv.URL, "secret-key", "Nexusnext <hello@nexusnext.io>")
	require.NoError(t, m.SendConfirmation(context.Background(), "ada@example.com"))

	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestMailerSurfacesProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewMailer(srv.URL, "bad-key", "Nexusnext <hello@nexusnext.io>")
	err := m.SendConfirmation(context.Background(), "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
