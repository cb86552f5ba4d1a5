// Package rest implements the core.API contract against the remote
// Sistema Class backend. Every response must follow the uniform envelope:
// success {ok:true, data: T}; failure {ok:false, error:{message, details?}}.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
)

const (
	genericRequestFailed = "Erro na requisição"
	invalidResponse      = "Resposta inválida da API"
)

type Client struct {
	http        *http.Client
	baseURL     string
	backendBase string
}

// NewClient normalizes the base URL (trailing slashes stripped). The health
// probe base is derived by stripping a trailing /api suffix.
func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimRight(core.CleanString(baseURL), "/")
	return &Client{
		http:        &http.Client{Timeout: timeout},
		baseURL:     base,
		backendBase: strings.TrimSuffix(base, "/api"),
	}
}

// NewDefaultClient builds a client from the apiBaseUrl/requestTimeout config.
func NewDefaultClient() *Client {
	return NewClient(core.Conf.GetString("apiBaseUrl"), core.Conf.GetDuration("requestTimeout"))
}

func (c *Client) BaseURL() string     { return c.baseURL }
func (c *Client) BackendBase() string { return c.backendBase }

func joinURL(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Request issues the call and unwraps the envelope into the raw data payload
// or a typed *APIError. The response body is read as text first; non-JSON
// bodies pass through as raw text for error reporting.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "rest: encoding request body")
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, joinURL(c.baseURL, path), reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "rest: building request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &core.APIError{Message: genericRequestFailed, Details: err.Error()}
	}
	defer res.Body.Close()

	text, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, &core.APIError{Message: genericRequestFailed, Status: res.StatusCode, Details: err.Error()}
	}

	parsed := parseJSONSafe(text)
	success := res.StatusCode >= 200 && res.StatusCode < 300

	if !success {
		if msg, details, ok := errEnvelope(text); ok {
			return nil, &core.APIError{Message: msg, Details: details, Status: res.StatusCode}
		}
		return nil, &core.APIError{Message: genericRequestFailed, Details: parsed, Status: res.StatusCode}
	}

	if data, ok := okEnvelope(text); ok {
		return data, nil
	}
	if msg, details, ok := errEnvelope(text); ok {
		return nil, &core.APIError{Message: msg, Details: details}
	}
	return nil, &core.APIError{Message: invalidResponse, Details: parsed, Status: res.StatusCode}
}

// parseJSONSafe attempts a JSON parse; failures fall back to the raw text
// (nil for an empty body).
func parseJSONSafe(text []byte) interface{} {
	if len(bytes.TrimSpace(text)) == 0 {
		return nil
	}
	var parsed interface{}
	if err := json.Unmarshal(text, &parsed); err != nil {
		return string(text)
	}
	return parsed
}

func probeEnvelope(text []byte) (map[string]json.RawMessage, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(text, &probe); err != nil {
		return nil, false
	}
	return probe, probe != nil
}

// okEnvelope recognizes {ok:true, data:...}; the data key must be present.
func okEnvelope(text []byte) (json.RawMessage, bool) {
	probe, ok := probeEnvelope(text)
	if !ok {
		return nil, false
	}
	var flag bool
	if raw, has := probe["ok"]; !has || json.Unmarshal(raw, &flag) != nil || !flag {
		return nil, false
	}
	data, has := probe["data"]
	return data, has
}

// errEnvelope recognizes {ok:false, error:{message, details?}}.
func errEnvelope(text []byte) (msg string, details interface{}, ok bool) {
	probe, found := probeEnvelope(text)
	if !found {
		return "", nil, false
	}
	var flag bool
	if raw, has := probe["ok"]; !has || json.Unmarshal(raw, &flag) != nil || flag {
		return "", nil, false
	}
	rawErr, has := probe["error"]
	if !has {
		return "", nil, false
	}
	var envErr struct {
		Message string      `json:"message"`
		Details interface{} `json:"details"`
	}
	if err := json.Unmarshal(rawErr, &envErr); err != nil {
		return "", nil, false
	}
	return envErr.Message, envErr.Details, true
}

var _ core.API = (*Client)(nil) // interface compliance check

// List implements core.API. A non-array data payload is treated as empty.
func (c *Client) List(ctx context.Context, path string) ([]core.Record, error) {
	raw, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var items []core.Record
	if err := json.Unmarshal(raw, &items); err != nil {
		return []core.Record{}, nil
	}
	if items == nil {
		items = []core.Record{}
	}
	return items, nil
}

// Create implements core.API. A non-object data payload yields an empty
// Record; callers decide whether a missing id is fatal.
func (c *Client) Create(ctx context.Context, path string, body interface{}) (core.Record, error) {
	raw, err := c.Request(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	var rec core.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return core.Record{}, nil
	}
	if rec == nil {
		rec = core.Record{}
	}
	return rec, nil
}

func (c *Client) Patch(ctx context.Context, path string, body interface{}) error {
	_, err := c.Request(ctx, http.MethodPatch, path, body)
	return err
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Request(ctx, http.MethodDelete, path, nil)
	return err
}
