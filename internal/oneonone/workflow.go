package oneonone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/oneonone/internal/directory"
	"github.com/teemow/oneonone/internal/docs"
	"github.com/teemow/oneonone/internal/google"
	"github.com/teemow/oneonone/internal/instrumentation"
	"github.com/teemow/oneonone/internal/logging"
	"github.com/teemow/oneonone/internal/prompt"
)

// CredentialSource obtains an authorized credential.
type CredentialSource interface {
	Obtain(ctx context.Context) (*google.Credential, error)
}

// CollaboratorDirectory lists candidate collaborators.
type CollaboratorDirectory interface {
	Lookup(ctx context.Context, query string) ([]directory.Collaborator, error)
}

// DocumentCreator creates and shares the document.
type DocumentCreator interface {
	CreateDocument(ctx context.Context, req docs.Request) (*docs.Result, error)
}

// Prompter asks the operator for input.
type Prompter interface {
	YourName(ctx context.Context) (string, error)
	SelectCollaborator(ctx context.Context, candidates []directory.Collaborator) (string, error)
	Confirm(ctx context.Context, s prompt.Summary) (bool, error)
}

// Services are the remote clients built once a credential is available.
type Services struct {
	Directory CollaboratorDirectory
	Documents DocumentCreator
}

// ServiceFactory builds Services for an authorized credential.
type ServiceFactory func(ctx context.Context, cred *google.Credential) (*Services, error)

// Options are the per-run inputs from the command line.
type Options struct {
	// Name is the operator's name. Asked for when empty.
	Name string

	// Email is the collaborator. When set the directory is not searched.
	Email string

	// CleanupOnFailure deletes a partially created document.
	CleanupOnFailure bool

	// SkipNotification shares without Drive's notification email.
	SkipNotification bool
}

// Outcome describes how a run ended.
type Outcome struct {
	// Cancelled is set when the operator declined or aborted a prompt.
	Cancelled bool

	// Interrupted is set when the cancellation came from ctrl+c or esc.
	Interrupted bool

	Title             string
	CollaboratorEmail string
	Result            *docs.Result
}

// Workflow creates one 1-on-1 document per Run.
type Workflow struct {
	credentials CredentialSource
	services    ServiceFactory
	prompter    Prompter
	out         io.Writer
	styles      styles
	now         func() time.Time
	logger      logging.Logger
	metrics     *instrumentation.Metrics
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*Workflow)

// WithClock replaces time.Now for deriving the document date.
func WithClock(now func() time.Time) WorkflowOption {
	return func(w *Workflow) {
		w.now = now
	}
}

// WithLogger sets the logger used by the workflow.
func WithLogger(l logging.Logger) WorkflowOption {
	return func(w *Workflow) {
		w.logger = l
	}
}

// WithMetrics records run outcomes on m.
func WithMetrics(m *instrumentation.Metrics) WorkflowOption {
	return func(w *Workflow) {
		w.metrics = m
	}
}

// NewWorkflow creates a Workflow writing progress to out.
func NewWorkflow(credentials CredentialSource, services ServiceFactory, prompter Prompter, out io.Writer, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		credentials: credentials,
		services:    services,
		prompter:    prompter,
		out:         out,
		styles:      newStyles(out),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.OrDefault(w.logger)
	return w
}

// Run executes the workflow once.
func (w *Workflow) Run(ctx context.Context, opts Options) (*Outcome, error) {
	start := time.Now()
	ctx, span := instrumentation.StartWorkflowSpan(ctx)
	defer span.End()

	outcome, err := w.run(ctx, opts)

	result := instrumentation.WorkflowResultCreated
	switch {
	case err != nil:
		result = instrumentation.WorkflowResultFailed
		instrumentation.SetSpanError(span, err)
	case outcome.Cancelled:
		result = instrumentation.WorkflowResultCancelled
		instrumentation.SetSpanSuccess(span)
	default:
		instrumentation.SetSpanSuccess(span)
	}
	span.SetAttributes(attribute.String(instrumentation.SpanAttrResult, result))

	email := opts.Email
	if outcome != nil && outcome.CollaboratorEmail != "" {
		email = outcome.CollaboratorEmail
	}
	w.metrics.RecordWorkflowRun(ctx, result, email, time.Since(start))
	w.logger.Debug("workflow finished",
		logging.Operation(instrumentation.OperationCreate),
		logging.Status(result),
		logging.Domain(email),
	)

	return outcome, err
}

func (w *Workflow) run(ctx context.Context, opts Options) (*Outcome, error) {
	w.println(w.styles.Pending.Render("Authenticating with Google..."))
	cred, err := w.credentials.Obtain(ctx)
	if err != nil {
		return nil, err
	}
	w.println(w.styles.Success.Render("✓ Authentication successful"))
	w.println()
	w.logger.Debug("credential ready", "source", cred.Source)

	services, err := w.services(ctx, cred)
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name, err = w.prompter.YourName(ctx)
		if err != nil {
			return w.aborted(err)
		}
	} else if err := prompt.ValidateName(name); err != nil {
		return nil, err
	}

	email, err := w.collaborator(ctx, services.Directory, opts.Email)
	if err != nil {
		return w.aborted(err)
	}

	date := w.now()
	partner := docs.PartnerName(email)
	req := docs.Request{
		Title:             docs.Title(date, email),
		Body:              docs.Body(date, name, partner),
		CollaboratorEmail: email,
		CleanupOnFailure:  opts.CleanupOnFailure,
		SkipNotification:  opts.SkipNotification,
	}
	outcome := &Outcome{Title: req.Title, CollaboratorEmail: email}

	ok, err := w.prompter.Confirm(ctx, prompt.Summary{
		Title:  req.Title,
		Editor: email,
		Body:   req.Body,
	})
	if err != nil {
		return w.aborted(err)
	}
	if !ok {
		w.println()
		w.println(w.styles.Pending.Render("Document creation cancelled."))
		outcome.Cancelled = true
		return outcome, nil
	}

	w.println()
	w.println(w.styles.Pending.Render("Creating document..."))
	result, err := services.Documents.CreateDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	outcome.Result = result

	w.report(outcome)
	return outcome, nil
}

// collaborator returns the email passed on the command line, or lets the
// operator pick one from the directory. Directory failures of any kind fall
// back to typing the address.
func (w *Workflow) collaborator(ctx context.Context, dir CollaboratorDirectory, email string) (string, error) {
	if email != "" {
		if err := prompt.ValidateEmail(email); err != nil {
			return "", err
		}
		return email, nil
	}

	w.println(w.styles.Pending.Render("Searching for users..."))
	candidates, err := dir.Lookup(ctx, "")
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		w.logger.Warn("directory lookup failed", logging.Err(err))
		w.println(w.styles.Pending.Render("Could not search users (admin permissions required)."))
		candidates = nil
	}

	return w.prompter.SelectCollaborator(ctx, candidates)
}

// aborted turns an interrupted prompt into a cancelled outcome.
func (w *Workflow) aborted(err error) (*Outcome, error) {
	if errors.Is(err, prompt.ErrInterrupted) {
		w.println()
		w.println(w.styles.Pending.Render("Document creation cancelled."))
		return &Outcome{Cancelled: true, Interrupted: true}, nil
	}
	return nil, err
}

func (w *Workflow) report(o *Outcome) {
	w.println()
	w.println(w.styles.Success.Render("✅ Document created successfully!"))
	w.println()
	w.println(w.styles.Bold.Render("Document URL:"), w.styles.Link.Render(o.Result.DocumentURL))
	w.println(w.styles.Faint.Render(fmt.Sprintf("Document ID: %s", o.Result.DocumentID)))
	w.println(w.styles.Faint.Render(fmt.Sprintf("Shared with: %s", o.CollaboratorEmail)))
}

func (w *Workflow) println(a ...any) {
	fmt.Fprintln(w.out, a...)
}

type styles struct {
	Pending lipgloss.Style
	Success lipgloss.Style
	Bold    lipgloss.Style
	Link    lipgloss.Style
	Faint   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Pending: r.NewStyle().Foreground(lipgloss.Color("3")),
		Success: r.NewStyle().Foreground(lipgloss.Color("2")),
		Bold:    r.NewStyle().Bold(true),
		Link:    r.NewStyle().Foreground(lipgloss.Color("6")),
		Faint:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
