package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/teemow/oneonone/internal/google"
)

const usersResponse = `{
  "kind": "admin#directory#users",
  "users": [
    {"primaryEmail": "jane.doe@example.com", "name": {"fullName": "Jane Doe", "givenName": "Jane", "familyName": "Doe"}},
    {"primaryEmail": "jack@example.com", "name": {"fullName": "Jack Jones", "givenName": "Jack", "familyName": "Jones"}},
    {"primaryEmail": "bob@example.com", "name": {"fullName": "Bob Jansen", "givenName": "Bob", "familyName": "Jansen"}},
    {"primaryEmail": "robot@example.com"},
    {"primaryEmail": "", "name": {"fullName": "Ghost"}}
  ]
}`

type recordedRequest struct {
	mu    sync.Mutex
	path  string
	query url.Values
}

func newTestClient(t *testing.T, status int, body string) (*Client, *recordedRequest) {
	t.Helper()

	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.Client(),
		WithClientOptions(option.WithEndpoint(srv.URL+"/")))
	require.NoError(t, err)
	return client, rec
}

func TestSearch_EmptyQuery(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, usersResponse)

	got, err := client.Search(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []Collaborator{
		{Email: "jane.doe@example.com", DisplayName: "Jane Doe"},
		{Email: "jack@example.com", DisplayName: "Jack Jones"},
		{Email: "bob@example.com", DisplayName: "Bob Jansen"},
		{Email: "robot@example.com", DisplayName: "robot@example.com"},
	}, got)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, "/admin/directory/v1/users", rec.path)
	assert.Equal(t, "my_customer", rec.query.Get("customer"))
	assert.Equal(t, "10", rec.query.Get("maxResults"))
	assert.Equal(t, "email", rec.query.Get("orderBy"))
	assert.Empty(t, rec.query.Get("query"))
}

func TestSearch_QueryFiltersByPrefix(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, usersResponse)

	got, err := client.Search(context.Background(), "Ja")
	require.NoError(t, err)

	rec.mu.Lock()
	assert.Equal(t, "email:Ja* name:Ja*", rec.query.Get("query"))
	rec.mu.Unlock()

	require.NotEmpty(t, got)
	for _, c := range got {
		prefixed := strings.HasPrefix(strings.ToLower(c.Email), "ja") ||
			strings.HasPrefix(strings.ToLower(c.DisplayName), "ja") ||
			strings.Contains(strings.ToLower(c.DisplayName), " ja")
		assert.True(t, prefixed, "unexpected match %+v", c)
	}

	emails := make([]string, 0, len(got))
	for _, c := range got {
		emails = append(emails, c.Email)
	}
	assert.Equal(t, []string{"jane.doe@example.com", "jack@example.com", "bob@example.com"}, emails)
}

func TestSearch_QueryWithoutMatches(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, usersResponse)

	got, err := client.Search(context.Background(), "zz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_PermissionDenied(t *testing.T) {
	client, _ := newTestClient(t, http.StatusForbidden,
		`{"error":{"code":403,"message":"Not Authorized to access this resource/api"}}`)

	_, err := client.Search(context.Background(), "")
	require.Error(t, err)

	var permErr *PermissionError
	assert.True(t, errors.As(err, &permErr))
}

func TestSearch_OtherError(t *testing.T) {
	client, _ := newTestClient(t, http.StatusInternalServerError,
		`{"error":{"code":500,"message":"Backend Error"}}`)

	_, err := client.Search(context.Background(), "")
	require.Error(t, err)

	var remoteErr *google.RemoteServiceError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "directory", remoteErr.Service)
	assert.Equal(t, "list", remoteErr.Operation)
	assert.Equal(t, http.StatusInternalServerError, google.StatusCode(err))
}

func TestLookup_PermissionDeniedIsEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.StatusForbidden,
		`{"error":{"code":403,"message":"Not Authorized to access this resource/api"}}`)

	got, err := client.Lookup(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLookup_OtherErrorPropagates(t *testing.T) {
	client, _ := newTestClient(t, http.StatusServiceUnavailable,
		`{"error":{"code":503,"message":"Service Unavailable"}}`)

	_, err := client.Lookup(context.Background(), "")
	require.Error(t, err)

	var remoteErr *google.RemoteServiceError
	assert.True(t, errors.As(err, &remoteErr))
}

func TestWithMaxResults(t *testing.T) {
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.query = r.URL.Query()
		rec.mu.Unlock()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), srv.Client(),
		WithMaxResults(25),
		WithClientOptions(option.WithEndpoint(srv.URL+"/")))
	require.NoError(t, err)

	got, err := client.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, "25", rec.query.Get("maxResults"))
}

func TestCollaborator_Label(t *testing.T) {
	c := Collaborator{Email: "jane.doe@example.com", DisplayName: "Jane Doe"}
	assert.Equal(t, "Jane Doe (jane.doe@example.com)", c.Label())
}
