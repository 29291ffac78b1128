// Package client is the HTTP layer between the harness and a MediaHub
// server. It attaches credentials, builds request bodies, and returns raw
// responses; deciding whether a response is acceptable is the caller's job.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SW-CD/mediahub-workflow-tests/framework"
)

const jsonContentType = "application/json"

// Credential is one username/password pair, attached to requests as HTTP
// Basic authentication. The zero value means "no authentication".
type Credential struct {
	Username string
	Password string
}

// Response is the raw result of one API call.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// BodyExcerpt returns the response body trimmed to a length that is safe to
// embed in a failure message.
func (r Response) BodyExcerpt() string {
	const maxLen = 300
	body := strings.TrimSpace(string(r.Body))
	if len(body) > maxLen {
		body = body[:maxLen] + "..."
	}
	return body
}

// MediaHubClient issues requests against one MediaHub server, with the
// credential supplied per call. Administrator calls go through this mode;
// they carry no session state between calls.
type MediaHubClient struct {
	baseURL    string
	httpClient *http.Client
	logger     framework.Logger
}

// New creates a MediaHubClient for the given base URL (including the /api
// prefix). The timeout applies to each individual request.
func New(baseURL string, requestTimeout time.Duration, logger framework.Logger) *MediaHubClient {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &MediaHubClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

func (c *MediaHubClient) BaseURL() string { return c.baseURL }

func (c *MediaHubClient) Get(path string, cred Credential, logger framework.Logger) (Response, error) {
	return c.do(c.httpClient, cred, http.MethodGet, path, "", nil, logger)
}

func (c *MediaHubClient) PostJSON(path string, cred Credential, params interface{}, logger framework.Logger) (Response, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return Response{}, err
	}
	return c.do(c.httpClient, cred, http.MethodPost, path, jsonContentType, data, logger)
}

func (c *MediaHubClient) PatchJSON(path string, cred Credential, params interface{}, logger framework.Logger) (Response, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return Response{}, err
	}
	return c.do(c.httpClient, cred, http.MethodPatch, path, jsonContentType, data, logger)
}

func (c *MediaHubClient) Delete(path string, cred Credential, logger framework.Logger) (Response, error) {
	return c.do(c.httpClient, cred, http.MethodDelete, path, "", nil, logger)
}

// Session binds one credential to one dedicated transport, so a sequence of
// calls by the same actor reuses a single authenticated channel. A server
// may cache its authorization decision for such a channel, so after the
// account's permissions change, the Session must be discarded and a new one
// created before the change can be observed; see MediaHubClient.NewSession.
type Session struct {
	c          *MediaHubClient
	httpClient *http.Client
	cred       Credential
}

// NewSession creates a Session with a fresh transport. Creating a new
// Session (rather than reusing an old one) is the only way to guarantee the
// server re-evaluates authorization for the account.
func (c *MediaHubClient) NewSession(cred Credential) *Session {
	return &Session{
		c: c,
		httpClient: &http.Client{
			Transport: &http.Transport{},
			Timeout:   c.httpClient.Timeout,
		},
		cred: cred,
	}
}

// Close releases the session's pooled connections. The session must not be
// used afterwards.
func (s *Session) Close() {
	s.httpClient.CloseIdleConnections()
}

func (s *Session) Get(path string, logger framework.Logger) (Response, error) {
	return s.c.do(s.httpClient, s.cred, http.MethodGet, path, "", nil, logger)
}

func (s *Session) PostJSON(path string, params interface{}, logger framework.Logger) (Response, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return Response{}, err
	}
	return s.c.do(s.httpClient, s.cred, http.MethodPost, path, jsonContentType, data, logger)
}

// Post sends a pre-built body, e.g. a multipart entry form.
func (s *Session) Post(path, contentType string, body []byte, logger framework.Logger) (Response, error) {
	return s.c.do(s.httpClient, s.cred, http.MethodPost, path, contentType, body, logger)
}

func (c *MediaHubClient) do(
	hc *http.Client,
	cred Credential,
	method, path, contentType string,
	body []byte,
	logger framework.Logger,
) (Response, error) {
	if logger == nil {
		logger = c.logger
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return Response{}, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cred != (Credential{}) {
		req.SetBasicAuth(cred.Username, cred.Password)
	}

	logger.Printf("request: %s", curlCommandFor(req, cred, body))

	resp, err := hc.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", method, req.URL, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: reading response body: %w", method, req.URL, err)
	}

	logger.Printf("response: %d (%d bytes)", resp.StatusCode, len(data))
	return Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}
