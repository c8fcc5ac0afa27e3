package drive

import (
	"context"
	"fmt"
	"net/http"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/teemow/oneonone/internal/instrumentation"
)

// Client wraps the Google Drive API service
type Client struct {
	service       *drive.Service
	metrics       *instrumentation.Metrics
	audit         *instrumentation.AuditLogger
	clientOptions []option.ClientOption
}

// Option configures a Client.
type Option func(*Client)

// WithMetrics records every Drive call on m.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithAuditLogger logs every permission grant and deletion to al.
func WithAuditLogger(al *instrumentation.AuditLogger) Option {
	return func(c *Client) {
		c.audit = al
	}
}

// WithClientOptions passes extra options to the underlying API service,
// for example option.WithEndpoint.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *Client) {
		c.clientOptions = append(c.clientOptions, opts...)
	}
}

// NewClient creates a Drive client that authenticates through httpClient.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...Option) (*Client, error) {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	clientOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, c.clientOptions...)
	driveService, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	c.service = driveService

	return c, nil
}

// ShareFile creates a permission on a file to share it
func (c *Client) ShareFile(ctx context.Context, fileID string, options *ShareOptions) (*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if options == nil {
		return nil, fmt.Errorf("share options are required")
	}
	if options.Type == "" {
		return nil, fmt.Errorf("permission type is required")
	}
	if options.Role == "" {
		return nil, fmt.Errorf("permission role is required")
	}
	if options.Type == PermissionTypeUser && options.EmailAddress == "" {
		return nil, fmt.Errorf("email address is required for user permissions")
	}

	permission := &drive.Permission{
		Type:         options.Type,
		Role:         options.Role,
		EmailAddress: options.EmailAddress,
	}

	mutation := instrumentation.NewMutation(ctx, instrumentation.ServiceDrive, instrumentation.OperationShare)
	mutation.DocumentID = fileID
	mutation.Collaborator = options.EmailAddress

	var created *drive.Permission
	err := instrumentation.TrackGoogleAPI(ctx, c.metrics, instrumentation.ServiceDrive, instrumentation.OperationShare,
		func(ctx context.Context) error {
			call := c.service.Permissions.Create(fileID, permission).
				Context(ctx).
				Fields("id")
			if options.SendNotificationEmail != nil {
				call = call.SendNotificationEmail(*options.SendNotificationEmail)
			}

			var err error
			created, err = call.Do()
			return err
		})
	c.audit.LogMutation(mutation.Complete(err))
	if err != nil {
		return nil, fmt.Errorf("failed to share file: %w", err)
	}

	result := convertToPermission(created)
	// Only the id is requested back; fill in what was granted.
	if result.Type == "" {
		result.Type = options.Type
	}
	if result.Role == "" {
		result.Role = options.Role
	}
	if result.EmailAddress == "" {
		result.EmailAddress = options.EmailAddress
	}

	return result, nil
}

// DeleteFile permanently deletes a file from Google Drive
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}

	mutation := instrumentation.NewMutation(ctx, instrumentation.ServiceDrive, instrumentation.OperationDelete)
	mutation.DocumentID = fileID

	err := instrumentation.TrackGoogleAPI(ctx, c.metrics, instrumentation.ServiceDrive, instrumentation.OperationDelete,
		func(ctx context.Context) error {
			return c.service.Files.Delete(fileID).Context(ctx).Do()
		})
	c.audit.LogMutation(mutation.Complete(err))
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func convertToPermission(p *drive.Permission) *Permission {
	return &Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         p.Role,
		EmailAddress: p.EmailAddress,
	}
}
