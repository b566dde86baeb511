package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"guidedit/internal/config"
	apperr "guidedit/internal/errors"
)

func newFlow(t *testing.T, apiURL string) *Flow {
	t.Helper()
	cfg := config.Default()
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "client-secret"
	cfg.APIURL = apiURL
	f, err := NewFlow(cfg)
	require.NoError(t, err)
	return f
}

// fakeGitHub serves the token endpoint and GET /user.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/login/oauth/access_token", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "bad_verification_code"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123", "token_type": "bearer"})
	})
	r.Get("/user", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"login":"octocat","id":42,"name":"Mona"}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthorizeURL(t *testing.T) {
	f := newFlow(t, "")

	u, err := url.Parse(f.AuthorizeURL())
	require.NoError(t, err)
	assert.Equal(t, "github.com", u.Host)
	assert.Equal(t, "/login/oauth/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8000/editor", q.Get("redirect_uri"))
	assert.Equal(t, f.state, q.Get("state"))
	assert.NotEmpty(t, f.state)
}

func TestNewFlow_SplitsRedirect(t *testing.T) {
	f := newFlow(t, "")
	assert.Equal(t, "localhost:8000", f.listen)
	assert.Equal(t, "/editor", f.path)
}

func TestNewFlow_DistinctState(t *testing.T) {
	assert.NotEqual(t, newFlow(t, "").state, newFlow(t, "").state)
}

func TestCallbackHandler(t *testing.T) {
	f := newFlow(t, "")

	tests := []struct {
		name     string
		query    url.Values
		wantCode int
		wantSent string
	}{
		{
			name:     "valid",
			query:    url.Values{"state": {f.state}, "code": {"abc"}},
			wantCode: http.StatusOK,
			wantSent: "abc",
		},
		{
			name:     "wrong state",
			query:    url.Values{"state": {"forged"}, "code": {"abc"}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing code",
			query:    url.Values{"state": {f.state}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "denied",
			query:    url.Values{"state": {f.state}, "error": {"access_denied"}},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := make(chan string, 1)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/editor?"+tt.query.Encode(), nil)

			f.callbackHandler(codes).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			select {
			case got := <-codes:
				assert.Equal(t, tt.wantSent, got)
			default:
				assert.Empty(t, tt.wantSent, "expected a code to be delivered")
			}
		})
	}
}

func TestCallbackHandler_OtherPath(t *testing.T) {
	f := newFlow(t, "")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)

	f.callbackHandler(make(chan string, 1)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExchange(t *testing.T) {
	srv := fakeGitHub(t)
	f := newFlow(t, srv.URL)
	f.oauth.Endpoint = oauth2.Endpoint{
		TokenURL:  srv.URL + "/login/oauth/access_token",
		AuthStyle: oauth2.AuthStyleInParams,
	}

	client, sess, err := f.exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, "octocat", sess.Login)
	assert.Equal(t, int64(42), sess.ID)
	assert.Equal(t, "Mona", sess.Name)
}

func TestExchange_BadCode(t *testing.T) {
	srv := fakeGitHub(t)
	f := newFlow(t, srv.URL)
	f.oauth.Endpoint = oauth2.Endpoint{
		TokenURL:  srv.URL + "/login/oauth/access_token",
		AuthStyle: oauth2.AuthStyleInParams,
	}

	_, _, err := f.exchange(context.Background(), "stale")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuth, apperr.GetKind(err))
}

func TestResume(t *testing.T) {
	srv := fakeGitHub(t)
	f := newFlow(t, srv.URL)

	_, sess, err := f.Resume(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "octocat", sess.Login)

	_, _, err = f.Resume(context.Background(), "revoked")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuth, apperr.GetKind(err))
}

func TestLogin_Cancelled(t *testing.T) {
	cfg := config.Default()
	cfg.ClientID = "client-id"
	cfg.RedirectURL = "http://127.0.0.1:0/editor"
	f, err := NewFlow(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = f.Login(ctx)
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuth, apperr.GetKind(err))
	assert.ErrorIs(t, err, context.Canceled)
}
