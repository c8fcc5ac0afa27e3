package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/option"

	"github.com/teemow/oneonone/internal/google"
	"github.com/teemow/oneonone/internal/instrumentation"
	"github.com/teemow/oneonone/internal/logging"
)

const (
	// customerMyCustomer addresses the customer of the authorized account.
	customerMyCustomer = "my_customer"

	// DefaultMaxResults caps a single search.
	DefaultMaxResults = 10
)

// Client wraps the Admin SDK Directory API service
type Client struct {
	service       *admin.Service
	metrics       *instrumentation.Metrics
	logger        logging.Logger
	maxResults    int64
	clientOptions []option.ClientOption
}

// Option configures a Client.
type Option func(*Client)

// WithMetrics records every directory call on m.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMaxResults overrides DefaultMaxResults.
func WithMaxResults(n int64) Option {
	return func(c *Client) {
		c.maxResults = n
	}
}

// WithClientOptions passes extra options to the underlying API service,
// for example option.WithEndpoint.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *Client) {
		c.clientOptions = append(c.clientOptions, opts...)
	}
}

// NewClient creates a directory client that authenticates through httpClient.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...Option) (*Client, error) {
	c := &Client{maxResults: DefaultMaxResults}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrDefault(c.logger)

	clientOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, c.clientOptions...)
	adminService, err := admin.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Admin Directory service: %w", err)
	}
	c.service = adminService

	return c, nil
}

// Search lists directory users whose email or name starts with query. An
// empty query lists the first users ordered by email. A 403 response is
// returned as *PermissionError, anything else as *google.RemoteServiceError.
func (c *Client) Search(ctx context.Context, query string) ([]Collaborator, error) {
	query = strings.TrimSpace(query)

	var users []*admin.User
	err := instrumentation.TrackGoogleAPI(ctx, c.metrics, instrumentation.ServiceDirectory, instrumentation.OperationList,
		func(ctx context.Context) error {
			call := c.service.Users.List().
				Customer(customerMyCustomer).
				MaxResults(c.maxResults).
				OrderBy("email").
				Context(ctx)
			if query != "" {
				call = call.Query(fmt.Sprintf("email:%s* name:%s*", query, query))
			}

			resp, err := call.Do()
			if err != nil {
				return err
			}
			users = resp.Users
			return nil
		})
	if err != nil {
		if google.IsPermissionDenied(err) {
			return nil, &PermissionError{Err: err}
		}
		return nil, google.NewRemoteServiceError(instrumentation.ServiceDirectory, instrumentation.OperationList, err)
	}

	collaborators := make([]Collaborator, 0, len(users))
	for _, u := range users {
		if u.PrimaryEmail == "" {
			continue
		}
		if query != "" && !matchesPrefix(u, query) {
			continue
		}
		collaborators = append(collaborators, convertToCollaborator(u))
	}

	c.logger.Debug("directory search",
		logging.Service(instrumentation.ServiceDirectory),
		logging.Operation(instrumentation.OperationList),
		"query_length", len(query),
		"results", len(collaborators),
	)
	return collaborators, nil
}

// Lookup is Search for callers that treat a missing directory privilege as
// an empty directory: a *PermissionError yields no collaborators and no error.
func (c *Client) Lookup(ctx context.Context, query string) ([]Collaborator, error) {
	collaborators, err := c.Search(ctx, query)
	if err != nil {
		var permErr *PermissionError
		if errors.As(err, &permErr) {
			c.logger.Warn("user search requires Google Workspace admin permissions, falling back to manual email input",
				logging.Err(err))
			return []Collaborator{}, nil
		}
		return nil, err
	}
	return collaborators, nil
}

// matchesPrefix reports whether the user's email, full name, given name or
// family name starts with query, ignoring case. The server-side query
// matches name prefixes on given and family name, so all three are checked.
func matchesPrefix(u *admin.User, query string) bool {
	q := strings.ToLower(query)
	candidates := []string{u.PrimaryEmail}
	if u.Name != nil {
		candidates = append(candidates, u.Name.FullName, u.Name.GivenName, u.Name.FamilyName)
	}
	for _, s := range candidates {
		if s != "" && strings.HasPrefix(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func convertToCollaborator(u *admin.User) Collaborator {
	name := u.PrimaryEmail
	if u.Name != nil && u.Name.FullName != "" {
		name = u.Name.FullName
	}
	return Collaborator{
		Email:       u.PrimaryEmail,
		DisplayName: name,
	}
}
