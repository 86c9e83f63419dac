package beeminder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2h4u/beeminder-wordcount/internal/beeminder"
)

func TestClient_CreateDatapoint(t *testing.T) {
	var (
		gotPath        string
		gotContentType string
		gotForm        map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		assert.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"auth_token": r.PostForm.Get("auth_token"),
			"value":      r.PostForm.Get("value"),
			"comment":    r.PostForm.Get("comment"),
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"5f3e","value":42,"comment":"x"}`))
	}))
	defer srv.Close()

	c := beeminder.NewClient(srv.URL+"/", srv.Client())
	resp, err := c.CreateDatapoint(context.Background(), beeminder.Datapoint{
		UserName:  "alice",
		GoalName:  "writing",
		AuthToken: "tok",
		Value:     42,
		Comment:   "2024-01-01T00:00:00.000Z - Notes",
	})
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, "5f3e", resp.DatapointID())
	assert.Equal(t, "/api/v1/users/alice/goals/writing/datapoints.json", gotPath)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, map[string]string{
		"auth_token": "tok",
		"value":      "42",
		"comment":    "2024-01-01T00:00:00.000Z - Notes",
	}, gotForm)
}

// TestClient_NonSuccessIsNotAnError verifies the body of a rejected request is returned.
func TestClient_NonSuccessIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":{"token":"bad_token"}}`))
	}))
	defer srv.Close()

	resp, err := beeminder.NewClient(srv.URL, nil).CreateDatapoint(context.Background(), beeminder.Datapoint{UserName: "u", GoalName: "g"})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, `{"errors":{"token":"bad_token"}}`, resp.Body)
	assert.Empty(t, resp.DatapointID())
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := beeminder.NewClient(url, nil).CreateDatapoint(context.Background(), beeminder.Datapoint{UserName: "u", GoalName: "g"})
	assert.Error(t, err)
}

func TestClient_DatapointsURL(t *testing.T) {
	c := beeminder.NewClient("", nil)
	assert.Equal(t, "https://www.beeminder.com/api/v1/users/alice/goals/weight/datapoints.json", c.DatapointsURL("alice", "weight"))
	assert.Equal(t, "https://www.beeminder.com/api/v1/users/a%2Fb/goals/g%20h/datapoints.json", c.DatapointsURL("a/b", "g h"))
}

func TestResponse_OK(t *testing.T) {
	for status, want := range map[int]bool{199: false, 200: true, 201: true, 299: true, 300: false, 422: false, 500: false} {
		assert.Equal(t, want, (&beeminder.Response{StatusCode: status}).OK(), "status %d", status)
	}
}

func TestResponse_DatapointIDNonJSON(t *testing.T) {
	assert.Empty(t, (&beeminder.Response{Body: "<html>gateway timeout</html>"}).DatapointID())
}
