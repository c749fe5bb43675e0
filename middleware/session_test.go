package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	existing := uuid.NewString()
	tests := map[string]struct {
		cookie string
		keep   bool
	}{
		"no cookie":      {},
		"valid cookie":   {cookie: existing, keep: true},
		"garbage cookie": {cookie: "not-a-uuid"},
		"non v4 uuid":    {cookie: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var seen string
			h := Session(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, err := GetSessionIDFromContext(r.Context())
				require.NoError(t, err)
				seen = id
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/matchup", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if tc.keep {
				assert.Equal(t, tc.cookie, seen)
			} else {
				assert.NotEqual(t, tc.cookie, seen)
				_, err := uuid.Parse(seen)
				assert.NoError(t, err)
			}

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, SessionCookieName, cookies[0].Name)
			assert.Equal(t, seen, cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
			assert.False(t, cookies[0].Secure)
		})
	}
}

func TestSession_BrowserSessionCookie(t *testing.T) {
	for _, secure := range []bool{false, true} {
		h := Session(secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		// без Max-Age и Expires браузер удаляет cookie вместе с сессией
		assert.Equal(t, 0, cookies[0].MaxAge)
		assert.True(t, cookies[0].Expires.IsZero())
		assert.NotContains(t, rec.Header().Get("Set-Cookie"), "Max-Age")
		assert.Equal(t, secure, cookies[0].Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	}
}

func TestGetSessionIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSessionIDFromContext(req.Context())
	assert.ErrorIs(t, err, ErrNoSession)

	id, err := GetSessionIDFromContext(WithSessionID(req.Context(), "abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}
