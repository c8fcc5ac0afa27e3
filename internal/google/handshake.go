package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/oneonone/internal/logging"
)

const callbackPath = "/oauth2callback"

// Authorizer runs an interactive OAuth consent flow and returns the token
// granted by the operator.
type Authorizer interface {
	Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error)
}

// LoopbackAuthorizer implements the installed-app flow: it listens on a
// random localhost port, sends the operator to the consent page and waits
// for Google to redirect back with an authorization code.
type LoopbackAuthorizer struct {
	// Out receives the consent URL.
	Out io.Writer

	// OpenBrowser is tried with the consent URL; failures are ignored.
	OpenBrowser func(url string) error

	Logger logging.Logger
}

type callbackResult struct {
	code string
	err  error
}

// Authorize blocks until the operator completes consent or ctx is done.
func (a *LoopbackAuthorizer) Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	logger := logging.OrDefault(a.Logger)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, &AuthError{Msg: "failed to start authorization listener", Err: err}
	}

	flow := *conf
	flow.RedirectURL = fmt.Sprintf("http://%s%s", listener.Addr().String(), callbackPath)

	state, err := randomState()
	if err != nil {
		_ = listener.Close()
		return nil, &AuthError{Msg: "failed to generate authorization state", Err: err}
	}
	verifier := oauth2.GenerateVerifier()

	authURL := flow.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)

	results := make(chan callbackResult, 1)
	server := &http.Server{
		Handler:           callbackHandler(state, results),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("authorization listener stopped", logging.Err(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if a.Out != nil {
		fmt.Fprintf(a.Out, "Authorize this app by visiting this URL:\n\n  %s\n\n", authURL)
	}
	if a.OpenBrowser != nil {
		if err := a.OpenBrowser(authURL); err != nil {
			logger.Debug("could not open browser", logging.Err(err))
		}
	}

	var result callbackResult
	select {
	case result = <-results:
	case <-ctx.Done():
		return nil, &AuthError{Msg: "authorization cancelled", Err: ctx.Err()}
	}
	if result.err != nil {
		return nil, result.err
	}

	token, err := flow.Exchange(ctx, result.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, &AuthError{Msg: "failed to exchange authorization code", Err: err}
	}

	return token, nil
}

// callbackHandler accepts the first redirect to callbackPath and reports its
// outcome on results.
func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	var once sync.Once

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != callbackPath {
			http.NotFound(w, r)
			return
		}

		query := r.URL.Query()
		var result callbackResult
		switch {
		case query.Get("error") != "":
			result.err = &AuthError{Msg: "authorization denied", Err: errors.New(query.Get("error"))}
		case query.Get("state") != state:
			result.err = &AuthError{Msg: "authorization state mismatch"}
		case query.Get("code") == "":
			result.err = &AuthError{Msg: "authorization response contained no code"}
		default:
			result.code = query.Get("code")
		}

		if result.err != nil {
			http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "Authorization complete. You can close this window and return to the terminal.")
		}

		once.Do(func() {
			results <- result
		})
	})
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
