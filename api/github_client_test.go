package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trellotogithub/config"
	"trellotogithub/models"
)

// recordedRequest はテストサーバーが受け取ったリクエストの記録です
type recordedRequest struct {
	Method string
	Path   string
	User   string
	Pass   string
	Body   string
}

func newTestClient(root string) *GitHubClient {
	cfg := &config.Config{
		GitHubRoot:     root,
		GitHubUser:     "octocat",
		GitHubPassword: "secret",
	}
	return NewGitHubClient(cfg, zap.NewNop().Sugar())
}

func recordingServer(t *testing.T, status int, respBody string, rec *[]recordedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		user, pass, _ := r.BasicAuth()
		*rec = append(*rec, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			User:   user,
			Pass:   pass,
			Body:   string(body),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
}

func TestRequest_DefaultsToGETWithoutPayload(t *testing.T) {
	var rec []recordedRequest
	server := recordingServer(t, http.StatusOK, `{}`, &rec)
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Request("user", "", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, rec, 1)
	assert.Equal(t, http.MethodGet, rec[0].Method)
	assert.Equal(t, "/user", rec[0].Path)
}

func TestRequest_DefaultsToPOSTWithPayload(t *testing.T) {
	var rec []recordedRequest
	server := recordingServer(t, http.StatusCreated, `{"url": "x"}`, &rec)
	defer server.Close()

	client := newTestClient(server.URL)
	payload := models.IssuePayload{Title: "タイトル", Body: "本文"}
	resp, err := client.Request("repos/o/r/issues", "", payload)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, rec, 1)
	assert.Equal(t, http.MethodPost, rec[0].Method)
	assert.Equal(t, "/repos/o/r/issues", rec[0].Path)

	var sent models.IssuePayload
	require.NoError(t, json.Unmarshal([]byte(rec[0].Body), &sent))
	assert.Equal(t, payload, sent)
}

func TestRequest_ExplicitMethodWins(t *testing.T) {
	var rec []recordedRequest
	server := recordingServer(t, http.StatusOK, `{}`, &rec)
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Request("repos/o/r/issues/1", http.MethodPatch, models.IssuePayload{Title: "t"})
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, rec, 1)
	assert.Equal(t, http.MethodPatch, rec[0].Method)
}

func TestRequest_AbsoluteURLBypassesRoot(t *testing.T) {
	var rec []recordedRequest
	server := recordingServer(t, http.StatusOK, `{}`, &rec)
	defer server.Close()

	// ルートには到達不能なURLを設定し、絶対URLが優先されることを確認する
	client := newTestClient("http://127.0.0.1:1")
	resp, err := client.Request(server.URL+"/repos/o/r/issues/5", http.MethodPatch, models.IssuePayload{Title: "t"})
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, rec, 1)
	assert.Equal(t, "/repos/o/r/issues/5", rec[0].Path)
}

func TestRequest_SendsBasicAuth(t *testing.T) {
	var rec []recordedRequest
	server := recordingServer(t, http.StatusOK, `{}`, &rec)
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Request("user", "", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, rec, 1)
	assert.Equal(t, "octocat", rec[0].User)
	assert.Equal(t, "secret", rec[0].Pass)
}

func TestRequest_ErrorBodyMessage(t *testing.T) {
	var rec []recordedRequest
	server := recordingServer(t, http.StatusUnauthorized, `{"message": "Bad credentials"}`, &rec)
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Request("user", "", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Bad credentials", apiErr.Message)
}

func TestRequest_ErrorBodyUnparseable(t *testing.T) {
	var rec []recordedRequest
	server := recordingServer(t, http.StatusInternalServerError, `not json`, &rec)
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Request("user", "", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "HTTP error 500: Internal Server Error", apiErr.Message)
}

func TestRequest_TransportErrorIsNotAPIError(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	_, err := client.Request("user", "", nil)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestCheckAuth_ReturnsUser(t *testing.T) {
	var rec []recordedRequest
	server := recordingServer(t, http.StatusOK, `{"login": "octocat", "name": "The Octocat"}`, &rec)
	defer server.Close()

	client := newTestClient(server.URL)
	user, err := client.CheckAuth()
	require.NoError(t, err)

	assert.Equal(t, "octocat", user.Login)
	assert.Equal(t, "The Octocat", user.Name)
	require.Len(t, rec, 1)
	assert.Equal(t, http.MethodGet, rec[0].Method)
	assert.Equal(t, "/user", rec[0].Path)
}

func TestCheckAuth_Unauthorized(t *testing.T) {
	var rec []recordedRequest
	server := recordingServer(t, http.StatusUnauthorized, `{"message": "Bad credentials"}`, &rec)
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CheckAuth()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad credentials")
}
