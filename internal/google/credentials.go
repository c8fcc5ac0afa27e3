package google

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// authorizedUserType is the "type" value Google client libraries use for
// refresh-token credentials.
const authorizedUserType = "authorized_user"

// Token sources for Credential.Source.
const (
	SourceCache       = "cache"
	SourceInteractive = "interactive"
)

// authorizedUser is the on-disk token file format.
type authorizedUser struct {
	Type         string `json:"type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

// Credential is persisted authorization material: the OAuth client
// configuration together with a token that can be refreshed.
type Credential struct {
	Config *oauth2.Config
	Token  *oauth2.Token

	// Source is SourceCache when the credential was loaded from the token
	// file and SourceInteractive when it came from a fresh authorization.
	Source string
}

// TokenSource returns a refreshing token source for the credential.
func (c *Credential) TokenSource(ctx context.Context) oauth2.TokenSource {
	return c.Config.TokenSource(ctx, c.Token)
}

// HTTPClient returns an HTTP client configured with OAuth2 authentication.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors.
func (c *Credential) HTTPClient(ctx context.Context) *http.Client {
	client := oauth2.NewClient(ctx, c.TokenSource(ctx))

	if transport, ok := client.Transport.(*oauth2.Transport); ok {
		base := http.DefaultTransport.(*http.Transport).Clone()
		base.ForceAttemptHTTP2 = false
		base.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
		transport.Base = base
	}

	return client
}

// clientDescriptor is the OAuth client file downloaded from the Google
// Cloud Console. Desktop clients use "installed", web clients "web".
type clientDescriptor struct {
	Installed *clientSecrets `json:"installed"`
	Web       *clientSecrets `json:"web"`
}

type clientSecrets struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AuthURI      string `json:"auth_uri"`
	TokenURI     string `json:"token_uri"`
}

// loadClientConfig reads the OAuth client descriptor. Redirect URIs are
// ignored since the loopback flow sets its own; missing endpoints default
// to Google's.
func loadClientConfig(path string, scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &AuthError{Path: path, Msg: "credentials file not found"}
		}
		return nil, &AuthError{Path: path, Msg: "failed to read credentials file", Err: err}
	}

	var desc clientDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, &AuthError{Path: path, Msg: "invalid credentials file", Err: err}
	}
	secrets := desc.Installed
	if secrets == nil {
		secrets = desc.Web
	}
	if secrets == nil {
		return nil, &AuthError{Path: path, Msg: "invalid credentials file", Err: errors.New(`expected an "installed" or "web" client`)}
	}
	if secrets.ClientID == "" {
		return nil, &AuthError{Path: path, Msg: "invalid credentials file", Err: errors.New("client_id is empty")}
	}

	endpoint := google.Endpoint
	if secrets.AuthURI != "" {
		endpoint.AuthURL = secrets.AuthURI
	}
	if secrets.TokenURI != "" {
		endpoint.TokenURL = secrets.TokenURI
	}

	return &oauth2.Config{
		ClientID:     secrets.ClientID,
		ClientSecret: secrets.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}, nil
}

// loadToken reads a previously saved authorized-user token. It returns
// (nil, nil) when the file is absent or unusable so the caller can fall
// back to interactive authorization.
func loadToken(path string, scopes []string) (*Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
	}

	var user authorizedUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, nil
	}
	if user.Type != authorizedUserType || user.RefreshToken == "" || user.ClientID == "" {
		return nil, nil
	}

	return &Credential{
		Config: &oauth2.Config{
			ClientID:     user.ClientID,
			ClientSecret: user.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       scopes,
		},
		Token: &oauth2.Token{
			TokenType:    "Bearer",
			RefreshToken: user.RefreshToken,
		},
		Source: SourceCache,
	}, nil
}

// saveToken writes the authorized-user token file readable only by the owner.
func saveToken(path string, conf *oauth2.Config, token *oauth2.Token) error {
	payload, err := json.Marshal(authorizedUser{
		Type:         authorizedUserType,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		RefreshToken: token.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(path, payload, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict token file permissions: %w", err)
	}

	return nil
}
