package docs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"

	"github.com/teemow/oneonone/internal/drive"
	"github.com/teemow/oneonone/internal/google"
	"github.com/teemow/oneonone/internal/instrumentation"
	"github.com/teemow/oneonone/internal/logging"
)

// cleanupTimeout bounds the delete issued after a failed run, which may
// happen after the caller's context was cancelled.
const cleanupTimeout = 30 * time.Second

// FileSharer is the Drive functionality the document client depends on.
type FileSharer interface {
	ShareFile(ctx context.Context, fileID string, options *drive.ShareOptions) (*drive.Permission, error)
	DeleteFile(ctx context.Context, fileID string) error
}

// Client wraps the Google Docs API service
type Client struct {
	service       *docs.Service
	files         FileSharer
	metrics       *instrumentation.Metrics
	audit         *instrumentation.AuditLogger
	logger        logging.Logger
	clientOptions []option.ClientOption
}

// Option configures a Client.
type Option func(*Client)

// WithMetrics records every Docs call on m.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithAuditLogger logs document creation to al.
func WithAuditLogger(al *instrumentation.AuditLogger) Option {
	return func(c *Client) {
		c.audit = al
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithClientOptions passes extra options to the underlying API service,
// for example option.WithEndpoint.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *Client) {
		c.clientOptions = append(c.clientOptions, opts...)
	}
}

// NewClient creates a Docs client that authenticates through httpClient and
// shares documents through files.
func NewClient(ctx context.Context, httpClient *http.Client, files FileSharer, opts ...Option) (*Client, error) {
	if files == nil {
		return nil, fmt.Errorf("file sharer cannot be nil")
	}

	c := &Client{files: files}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrDefault(c.logger)

	clientOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, c.clientOptions...)
	docsService, err := docs.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}
	c.service = docsService

	return c, nil
}

// CreateDocument creates the document, inserts the body at the start and
// grants the collaborator writer access, in that order.
func (c *Client) CreateDocument(ctx context.Context, req Request) (*Result, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("document title is required")
	}
	if req.CollaboratorEmail == "" {
		return nil, fmt.Errorf("collaborator email is required")
	}

	documentID, err := c.create(ctx, req)
	if err != nil {
		return nil, google.NewRemoteServiceError(instrumentation.ServiceDocs, instrumentation.OperationCreate, err)
	}
	c.logger.Debug("document created", logging.Document(documentID))

	if err := c.insertBody(ctx, documentID, req.Body); err != nil {
		return nil, c.partial(ctx, req, documentID,
			google.NewRemoteServiceError(instrumentation.ServiceDocs, instrumentation.OperationBatchUpdate, err))
	}

	share := &drive.ShareOptions{
		Type:         drive.PermissionTypeUser,
		Role:         drive.RoleWriter,
		EmailAddress: req.CollaboratorEmail,
	}
	if req.SkipNotification {
		notify := false
		share.SendNotificationEmail = &notify
	}
	_, err = c.files.ShareFile(ctx, documentID, share)
	if err != nil {
		return nil, c.partial(ctx, req, documentID,
			google.NewRemoteServiceError(instrumentation.ServiceDrive, instrumentation.OperationShare, err))
	}
	c.logger.Debug("document shared", logging.Document(documentID), logging.UserHash(req.CollaboratorEmail))

	return &Result{
		DocumentID:  documentID,
		DocumentURL: DocumentURL(documentID),
	}, nil
}

func (c *Client) create(ctx context.Context, req Request) (string, error) {
	mutation := instrumentation.NewMutation(ctx, instrumentation.ServiceDocs, instrumentation.OperationCreate)
	mutation.Collaborator = req.CollaboratorEmail

	var documentID string
	err := instrumentation.TrackGoogleAPI(ctx, c.metrics, instrumentation.ServiceDocs, instrumentation.OperationCreate,
		func(ctx context.Context) error {
			doc, err := c.service.Documents.Create(&docs.Document{Title: req.Title}).
				Context(ctx).
				Do()
			if err != nil {
				return err
			}
			if doc.DocumentId == "" {
				return errors.New("response contained no document id")
			}
			documentID = doc.DocumentId
			return nil
		})
	mutation.DocumentID = documentID
	c.audit.LogMutation(mutation.Complete(err))

	return documentID, err
}

func (c *Client) insertBody(ctx context.Context, documentID, body string) error {
	// The API rejects empty inserts.
	if body == "" {
		return nil
	}

	update := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: 1},
					Text:     body,
				},
			},
		},
	}

	return instrumentation.TrackGoogleAPI(ctx, c.metrics, instrumentation.ServiceDocs, instrumentation.OperationBatchUpdate,
		func(ctx context.Context) error {
			_, err := c.service.Documents.BatchUpdate(documentID, update).Context(ctx).Do()
			return err
		})
}

// partial wraps err for a document that exists but was not completed,
// deleting it first when the request asks for it.
func (c *Client) partial(ctx context.Context, req Request, documentID string, err error) error {
	perr := &PartialError{DocumentID: documentID, Err: err}
	if !req.CleanupOnFailure {
		c.logger.Warn("document left behind after failure", logging.Document(documentID), logging.Err(err))
		return perr
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if derr := c.files.DeleteFile(cleanupCtx, documentID); derr != nil {
		c.logger.Warn("failed to delete partially created document", logging.Document(documentID), logging.Err(derr))
		perr.CleanupErr = derr
		return perr
	}

	c.logger.Debug("deleted partially created document", logging.Document(documentID))
	perr.Deleted = true
	return perr
}
