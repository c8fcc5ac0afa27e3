package google

import (
	"context"
	"os"
	"path/filepath"

	"github.com/teemow/oneonone/internal/instrumentation"
	"github.com/teemow/oneonone/internal/logging"
)

const (
	// DefaultCredentialsFile is the OAuth client descriptor looked up in the
	// working directory.
	DefaultCredentialsFile = "credentials.json"

	// DefaultTokenFile is where the authorized-user token is saved.
	DefaultTokenFile = "token.json"
)

// StoreConfig locates the credential files.
type StoreConfig struct {
	// CredentialsFile is the OAuth client descriptor (read-only).
	CredentialsFile string

	// TokenFile is the authorized-user token written after authorization.
	TokenFile string

	// Scopes requested during authorization (default: DefaultOAuthScopes).
	Scopes []string
}

// DefaultStoreConfig returns a StoreConfig rooted in the working directory,
// overridable through ONEONONE_CREDENTIALS_FILE and ONEONONE_TOKEN_FILE.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		CredentialsFile: getEnvOrDefault("ONEONONE_CREDENTIALS_FILE", workingDirPath(DefaultCredentialsFile)),
		TokenFile:       getEnvOrDefault("ONEONONE_TOKEN_FILE", workingDirPath(DefaultTokenFile)),
		Scopes:          DefaultOAuthScopes,
	}
}

// Store obtains credentials, preferring the saved token and falling back to
// interactive authorization.
type Store struct {
	config     StoreConfig
	authorizer Authorizer
	logger     logging.Logger
	metrics    *instrumentation.Metrics
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithAuthorizer replaces the interactive authorization flow.
func WithAuthorizer(a Authorizer) StoreOption {
	return func(s *Store) {
		s.authorizer = a
	}
}

// WithLogger sets the logger used by the store.
func WithLogger(l logging.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// WithMetrics records authorization outcomes on m.
func WithMetrics(m *instrumentation.Metrics) StoreOption {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore creates a Store. Without WithAuthorizer it authorizes through a
// loopback redirect, printing the consent URL to stderr.
func NewStore(config StoreConfig, opts ...StoreOption) *Store {
	if len(config.Scopes) == 0 {
		config.Scopes = DefaultOAuthScopes
	}

	s := &Store{config: config}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = logging.OrDefault(s.logger)
	if s.authorizer == nil {
		s.authorizer = &LoopbackAuthorizer{Out: os.Stderr, OpenBrowser: OpenBrowser, Logger: s.logger}
	}

	return s
}

// Config returns the store configuration.
func (s *Store) Config() StoreConfig {
	return s.config
}

// Obtain returns a usable credential. A parseable token file is returned as
// is, without network interaction. Otherwise the client descriptor is read,
// the operator authorizes access and the new token is saved.
func (s *Store) Obtain(ctx context.Context) (*Credential, error) {
	cred, err := loadToken(s.config.TokenFile, s.config.Scopes)
	if err != nil {
		s.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return nil, &AuthError{Path: s.config.TokenFile, Msg: "failed to load saved token", Err: err}
	}
	if cred != nil {
		s.logger.Debug("loaded saved token", "path", s.config.TokenFile)
		s.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultCached)
		return cred, nil
	}

	conf, err := loadClientConfig(s.config.CredentialsFile, s.config.Scopes)
	if err != nil {
		s.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return nil, err
	}

	token, err := s.authorizer.Authorize(ctx, conf)
	if err != nil {
		s.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return nil, err
	}
	if token.RefreshToken == "" {
		s.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return nil, &AuthError{Msg: "authorization returned no refresh token; revoke the app's access and try again"}
	}

	if err := saveToken(s.config.TokenFile, conf, token); err != nil {
		s.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return nil, &AuthError{Path: s.config.TokenFile, Msg: "failed to save token", Err: err}
	}
	s.logger.Debug("saved token", "path", s.config.TokenFile, "refresh_token", logging.SanitizeToken(token.RefreshToken))
	s.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess)

	return &Credential{Config: conf, Token: token, Source: SourceInteractive}, nil
}

func workingDirPath(name string) string {
	wd, err := os.Getwd()
	if err != nil {
		return name
	}
	return filepath.Join(wd, name)
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
