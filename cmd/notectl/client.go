package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// apiClient is a thin resty wrapper over the notes REST API.
type apiClient struct {
	r *resty.Client
}

func newAPIClient(baseURL string) *apiClient {
	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(15*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &apiClient{r: r}
}

// apiError carries the status and message of a non-2xx response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

func (c *apiClient) call(ctx context.Context, method, path string, query map[string]string, body interface{}) ([]byte, error) {
	req := c.r.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(resp.Body(), &e)
		return nil, &apiError{Status: resp.StatusCode(), Message: e.Message}
	}
	return resp.Body(), nil
}

// callInto decodes a successful JSON response into out.
func (c *apiClient) callInto(ctx context.Context, method, path string, query map[string]string, body, out interface{}) error {
	data, err := c.call(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// printJSON writes data indented, or as-is when it is not JSON.
func printJSON(w io.Writer, data []byte) {
	if len(data) == 0 {
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		_, _ = fmt.Fprintln(w, string(data))
		return
	}
	_, _ = fmt.Fprintln(w, buf.String())
}
