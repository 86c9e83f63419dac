// Beeminder API client for datapoint creation.
//
// CreateDatapoint is the only call the word counter makes:
//
//	POST {base}/api/v1/users/{user}/goals/{goal}/datapoints.json
//	auth_token=...&value=...&comment=...
//
// Only the status class of the response matters. The body is always returned
// so failures can be shown to the user verbatim.
package beeminder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the public Beeminder service.
	DefaultBaseURL = "https://www.beeminder.com"

	// maxResponseSize prevents OOM on unexpectedly large responses (1MB).
	maxResponseSize = 1 * 1024 * 1024
)

// Datapoint is one value submitted against a goal.
type Datapoint struct {
	UserName  string
	GoalName  string
	AuthToken string
	Value     int
	Comment   string
}

// Response is the service's answer to a datapoint request.
type Response struct {
	StatusCode int
	Body       string
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DatapointID returns the "id" field of a JSON response body, or "".
func (r *Response) DatapointID() string {
	if !gjson.Valid(r.Body) {
		return ""
	}
	return gjson.Get(r.Body, "id").String()
}

// Client talks to the Beeminder REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. An empty baseURL uses DefaultBaseURL; a nil
// httpClient uses a zero http.Client, which has no timeout of its own.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// DatapointsURL returns the datapoint endpoint for a user's goal.
func (c *Client) DatapointsURL(user, goal string) string {
	return fmt.Sprintf("%s/api/v1/users/%s/goals/%s/datapoints.json",
		c.baseURL, url.PathEscape(user), url.PathEscape(goal))
}

// CreateDatapoint posts one datapoint. A non-2xx status is not an error:
// the caller inspects Response.OK. Errors are transport failures only.
func (c *Client) CreateDatapoint(ctx context.Context, dp Datapoint) (*Response, error) {
	form := url.Values{}
	form.Set("auth_token", dp.AuthToken)
	form.Set("value", strconv.Itoa(dp.Value))
	form.Set("comment", dp.Comment)

	endpoint := c.DatapointsURL(dp.UserName, dp.GoalName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create datapoint request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datapoint request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read datapoint response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
