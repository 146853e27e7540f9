package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// HTTPClient drives a gin engine in-process.
type HTTPClient struct {
	router *gin.Engine
	token  string
}

func NewHTTPClient(router *gin.Engine, token string) *HTTPClient {
	return &HTTPClient{router: router, token: token}
}

type Request struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

func (c *HTTPClient) Do(req Request) (*Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		switch b := req.Body.(type) {
		case []byte:
			bodyReader = bytes.NewReader(b)
		case string:
			bodyReader = bytes.NewReader([]byte(b))
		default:
			bodyBytes, err := json.Marshal(req.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal request body: %v", err)
			}
			bodyReader = bytes.NewReader(bodyBytes)
		}
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, httpReq)

	return &Response{
		StatusCode: w.Code,
		Body:       w.Body.Bytes(),
		Headers:    w.Header(),
	}, nil
}

func (c *HTTPClient) GET(path string) (*Response, error) {
	return c.Do(Request{Method: http.MethodGet, Path: path})
}

func (c *HTTPClient) POST(path string, body interface{}) (*Response, error) {
	return c.Do(Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *HTTPClient) PUT(path string, body interface{}) (*Response, error) {
	return c.Do(Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *HTTPClient) PATCH(path string, body interface{}) (*Response, error) {
	return c.Do(Request{Method: http.MethodPatch, Path: path, Body: body})
}

func (c *HTTPClient) DELETE(path string) (*Response, error) {
	return c.Do(Request{Method: http.MethodDelete, Path: path})
}

func (r *Response) DecodeJSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}
