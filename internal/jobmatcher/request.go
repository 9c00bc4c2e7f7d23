package jobmatcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const contentType = "application/json"

// APIError is a non-success response from the backend. Detail carries the
// human-readable message the backend put into its error body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
}

// FilePart describes a file attached to a multipart request.
type FilePart struct {
	Field  string
	Name   string
	Reader io.Reader
}

func (c *Client) getJSON(path string, q url.Values, target any, tokenOverride string) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, c.APIURL+path, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req, tokenOverride)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	return c.do(req, target)
}

func (c *Client) postJSON(path string, body any, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, c.APIURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req = c.setHeaders(req, "")
	req.Header.Set("Content-Type", contentType)

	return c.do(req, target)
}

func (c *Client) postMultipart(path string, fields map[string]string, file *FilePart, target any) error {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for key, val := range fields {
		field, err := w.CreateFormField(key)
		if err != nil {
			return err
		}

		if _, err = io.Copy(field, strings.NewReader(val)); err != nil {
			return err
		}
	}

	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return err
		}

		if _, err = io.Copy(part, file.Reader); err != nil {
			return err
		}
	}

	w.Close()

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, c.APIURL+path, &b)
	if err != nil {
		return err
	}

	req = c.setHeaders(req, "")
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, target)
}

func (c *Client) do(req *http.Request, target any) error {
	c.logger.Debug("make request", zap.String("method", req.Method), zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return apiError(resp, data)
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}

// apiError extracts the backend's detail message from an error body. Bodies
// that do not carry one fall back to the HTTP status text.
func apiError(resp *http.Response, data []byte) error {
	var body struct {
		Detail string `json:"detail"`
	}

	detail := strings.TrimSpace(http.StatusText(resp.StatusCode))
	if err := json.Unmarshal(data, &body); err == nil && strings.TrimSpace(body.Detail) != "" {
		detail = strings.TrimSpace(body.Detail)
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Detail:     detail,
	}
}
