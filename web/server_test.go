package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusnext/nexusnext/web/waitlist"
)

// stubStore lets handler tests force every storage outcome.
type stubStore struct {
	added   []string
	created bool
	err     error
}

var _ waitlist.Store = &stubStore{}

func (s *stubStore) Add(ctx context.Context, email string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	s.added = append(s.added, email)
	return s.created, nil
}

func (s *stubStore) Count(ctx context.Context) (int, error) { return len(s.added), nil }

func (s *stubStore) Close() error { return nil }

// recordingMailer counts confirmations instead of sending them.
type recordingMailer struct {
	sent []string
	err  error
}

var _ waitlist.Mailer = &recordingMailer{}

func (m *recordingMailer) SendConfirmation(ctx context.Context, email string) error {
	m.sent = append(m.sent, email)
	return m.err
}

func postJSON(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestWaitlistHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		store      *stubStore
		wantStatus int
		wantField  string
		wantValue  string
	}{
		{
			name:       "valid email",
			body:       `{"email":"ada@example.com"}`,
			store:      &stubStore{created: true},
			wantStatus: http.StatusOK,
			wantField:  "message",
			wantValue:  "You're on the list. We'll be in touch.",
		},
		{
			name:       "duplicate email still succeeds",
			body:       `{"email":"ada@example.com"}`,
			store:      &stubStore{created: false},
			wantStatus: http.StatusOK,
			wantField:  "message",
			wantValue:  "You're on the list. We'll be in touch.",
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email"}`,
			store:      &stubStore{},
			wantStatus: http.StatusBadRequest,
			wantField:  "error",
			wantValue:  "Invalid email address",
		},
		{
			name:       "malformed body",
			body:       `{"email":`,
			store:      &stubStore{},
			wantStatus: http.StatusBadRequest,
			wantField:  "error",
			wantValue:  "Invalid email address",
		},
		{
			name:       "storage failure",
			body:       `{"email":"ada@example.com"}`,
			store:      &stubStore{err: errors.New("disk full")},
			wantStatus: http.StatusInternalServerError,
			wantField:  "error",
			wantValue:  "Failed to add to waitlist.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(WithStore(tt.store))
			rec := postJSON(t, srv.Handler(), tt.body)

			require.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantValue, body[tt.wantField])
		})
	}
}

func TestWaitlistFormPostIsAccepted(t *testing.T) {
	store := &stubStore{created: true}
	srv := NewServer(WithStore(store))

	form := url.Values{"email": {"ada@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"ada@example.com"}, store.added)
}

func TestConfirmationSentOnlyForNewEntries(t *testing.T) {
	mailer := &recordingMailer{}
	srv := NewServer(WithStore(&stubStore{created: true}), WithMailer(mailer))
	postJSON(t, srv.Handler(), `{"email":"ada@example.com"}`)
	assert.Equal(t, []string{"ada@example.com"}, mailer.sent)

	mailer = &recordingMailer{}
	srv = NewServer(WithStore(&stubStore{created: false}), WithMailer(mailer))
	postJSON(t, srv.Handler(), `{"email":"ada@example.com"}`)
	assert.Empty(t, mailer.sent, "duplicates must not trigger another confirmation")
}

func TestConfirmationFailureDoesNotAffectResponse(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("provider down")}
	srv := NewServer(WithStore(&stubStore{created: true}), WithMailer(mailer))

	rec := postJSON(t, srv.Handler(), `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRootServesLandingPageToBrowsers(t *testing.T) {
	srv := NewServer(WithStore(&stubStore{}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Join the waitlist")
	assert.Contains(t, rec.Body.String(), "/api/waitlist")
}

func TestRootServesLivenessTextOtherwise(t *testing.T) {
	srv := NewServer(WithStore(&stubStore{}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "live")
}

func TestHealthz(t *testing.T) {
	srv := NewServer(WithStore(&stubStore{}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}
