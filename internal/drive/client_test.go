package drive

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.Client(),
		WithClientOptions(option.WithEndpoint(srv.URL+"/")))
	require.NoError(t, err)
	return client
}

func TestShareFile(t *testing.T) {
	var got drive.Permission
	var gotPath, gotFields string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
		gotFields = r.URL.Query().Get("fields")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"perm-1"}`))
	})

	perm, err := client.ShareFile(context.Background(), "doc-1", &ShareOptions{
		Type:         PermissionTypeUser,
		Role:         RoleWriter,
		EmailAddress: "jane.doe@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "/files/doc-1/permissions", gotPath)
	assert.Equal(t, "id", gotFields)
	assert.Equal(t, "user", got.Type)
	assert.Equal(t, "writer", got.Role)
	assert.Equal(t, "jane.doe@example.com", got.EmailAddress)

	assert.Equal(t, &Permission{
		ID:           "perm-1",
		Type:         "user",
		Role:         "writer",
		EmailAddress: "jane.doe@example.com",
	}, perm)
}

func TestShareFile_SendNotificationEmail(t *testing.T) {
	var query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("sendNotificationEmail")
		_, _ = w.Write([]byte(`{"id":"perm-1"}`))
	})

	notify := false
	_, err := client.ShareFile(context.Background(), "doc-1", &ShareOptions{
		Type:                  PermissionTypeUser,
		Role:                  RoleWriter,
		EmailAddress:          "jane.doe@example.com",
		SendNotificationEmail: &notify,
	})
	require.NoError(t, err)
	assert.Equal(t, "false", query)
}

func TestShareFile_Validation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	tests := []struct {
		name    string
		fileID  string
		options *ShareOptions
	}{
		{name: "missing file id", fileID: "", options: &ShareOptions{Type: "user", Role: "writer", EmailAddress: "a@b.co"}},
		{name: "nil options", fileID: "doc-1", options: nil},
		{name: "missing type", fileID: "doc-1", options: &ShareOptions{Role: "writer"}},
		{name: "missing role", fileID: "doc-1", options: &ShareOptions{Type: "user"}},
		{name: "user without email", fileID: "doc-1", options: &ShareOptions{Type: "user", Role: "writer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.ShareFile(context.Background(), tt.fileID, tt.options)
			assert.Error(t, err)
		})
	}
}

func TestShareFile_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"Invalid sharing request"}}`))
	})

	_, err := client.ShareFile(context.Background(), "doc-1", &ShareOptions{
		Type:         PermissionTypeUser,
		Role:         RoleWriter,
		EmailAddress: "nobody@example.com",
	})
	require.Error(t, err)

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
	assert.Contains(t, err.Error(), "failed to share file")
}

func TestDeleteFile(t *testing.T) {
	var method, path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteFile(context.Background(), "doc-1"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/files/doc-1", path)

	assert.Error(t, client.DeleteFile(context.Background(), ""))
}

func TestDeleteFile_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"File not found"}}`))
	})

	err := client.DeleteFile(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete file")
}

func TestConvertToPermission(t *testing.T) {
	perm := convertToPermission(&drive.Permission{
		Id:           "perm123",
		Type:         "user",
		Role:         "reader",
		EmailAddress: "reader@example.com",
	})

	assert.Equal(t, "perm123", perm.ID)
	assert.Equal(t, "user", perm.Type)
	assert.Equal(t, "reader", perm.Role)
	assert.Equal(t, "reader@example.com", perm.EmailAddress)
}
