// Package auth logs the user in to GitHub with the OAuth web flow: the
// browser is sent to the authorize URL and GitHub redirects back to a
// short-lived local listener with the code.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"guidedit/internal/config"
	apperr "guidedit/internal/errors"
	"guidedit/internal/forge"
	"guidedit/internal/logger"
	"guidedit/internal/model"
)

const callbackTimeout = 5 * time.Minute

// Flow performs the login. One Flow serves one program run; the state
// parameter is fixed at construction.
type Flow struct {
	oauth  oauth2.Config
	state  string
	apiURL string
	log    *slog.Logger

	listen string // host:port of the redirect target
	path   string // path of the redirect target
}

// NewFlow builds a Flow from cfg.
func NewFlow(cfg *config.Config) (*Flow, error) {
	redirect, err := url.Parse(cfg.RedirectURL)
	if err != nil {
		return nil, apperr.ConfigInvalid("redirect_url: " + err.Error())
	}
	path := redirect.Path
	if path == "" {
		path = "/"
	}
	return &Flow{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     github.Endpoint,
		},
		state:  uuid.NewString(),
		apiURL: cfg.APIURL,
		log:    logger.Component("auth"),
		listen: redirect.Host,
		path:   path,
	}, nil
}

// AuthorizeURL is the page the user opens to grant access.
func (f *Flow) AuthorizeURL() string {
	return f.oauth.AuthCodeURL(f.state)
}

// Login waits for GitHub to redirect to the local listener, exchanges the
// code and resolves the user. It returns when ctx is cancelled.
func (f *Flow) Login(ctx context.Context) (forge.Forge, model.Session, error) {
	const op = apperr.Op("auth.Login")

	ctx, cancel := context.WithTimeout(ctx, callbackTimeout)
	defer cancel()

	codes := make(chan string, 1)
	ln, err := net.Listen("tcp", f.listen)
	if err != nil {
		return nil, model.Session{}, apperr.AuthFailed(op, fmt.Errorf("listen on %s: %w", f.listen, err))
	}
	srv := &http.Server{Handler: f.callbackHandler(codes), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.log.Error("callback server stopped", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
	}()
	f.log.Info("waiting for oauth callback", "addr", f.listen, "path", f.path)

	select {
	case <-ctx.Done():
		return nil, model.Session{}, apperr.AuthFailed(op, ctx.Err())
	case code := <-codes:
		return f.exchange(ctx, code)
	}
}

// callbackHandler accepts exactly one redirect carrying our state.
func (f *Flow) callbackHandler(codes chan<- string) http.Handler {
	r := chi.NewRouter()
	r.Get(f.path, func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Get("state") != f.state {
			f.log.Warn("oauth callback with unexpected state")
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		if e := q.Get("error"); e != "" {
			http.Error(w, "GitHub denied access: "+e, http.StatusForbidden)
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		select {
		case codes <- code:
		default:
		}
		fmt.Fprintln(w, "Logged in. You can close this tab and return to the editor.")
	})
	return r
}

func (f *Flow) exchange(ctx context.Context, code string) (forge.Forge, model.Session, error) {
	tok, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, model.Session{}, apperr.AuthFailed("auth.Exchange", err)
	}
	return f.connect(ctx, oauth2.StaticTokenSource(tok))
}

// Resume logs in with an existing token, skipping the browser.
func (f *Flow) Resume(ctx context.Context, token string) (forge.Forge, model.Session, error) {
	return f.connect(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
}

func (f *Flow) connect(ctx context.Context, ts oauth2.TokenSource) (forge.Forge, model.Session, error) {
	const op = apperr.Op("auth.Connect")

	// the client outlives ctx, which only bounds the login itself
	client, err := forge.NewGitHub(oauth2.NewClient(context.Background(), ts), f.apiURL)
	if err != nil {
		return nil, model.Session{}, apperr.AuthFailed(op, err)
	}
	sess, err := client.CurrentUser(ctx)
	if err != nil {
		return nil, model.Session{}, apperr.AuthFailed(op, err)
	}
	f.log.Info("logged in", "login", sess.Login, "id", sess.ID)
	return client, sess, nil
}
