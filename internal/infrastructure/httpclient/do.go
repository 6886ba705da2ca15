// Package httpclient runs provider requests through go-client and reports
// non-2xx answers as *errorsx.HTTPError with the raw upstream body.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"travel-agent/internal/domain/errorsx"

	"github.com/mutablelogic/go-client"
)

// MaxErrorBody caps how much of a non-2xx body is kept.
const MaxErrorBody = 64 << 10

// Do issues a GET through c and decodes the answer into out. Transport
// failures are returned without the request URL, which may carry credentials.
func Do(ctx context.Context, c *client.Client, provider string, out any, opts ...client.RequestOpt) error {
	capture := &responseCapture{}
	opts = append(opts, client.OptReqTransport(capture.wrap))

	err := c.DoWithContext(ctx, nil, out, opts...)
	if err == nil {
		return nil
	}

	if capture.statusCode != 0 {
		return &errorsx.HTTPError{
			Provider:   provider,
			StatusCode: capture.statusCode,
			Status:     capture.status,
			Body:       capture.body,
		}
	}

	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

// responseCapture records the status line and body of the final non-2xx
// response and hands an identical body on to go-client.
type responseCapture struct {
	base       http.RoundTripper
	statusCode int
	status     string
	body       string
}

func (t *responseCapture) wrap(base http.RoundTripper) http.RoundTripper {
	t.base = base
	return t
}

func (t *responseCapture) RoundTrip(req *http.Request) (*http.Response, error) {
	t.statusCode, t.status, t.body = 0, "", ""

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	if resp.StatusCode >= 300 && resp.StatusCode < 400 && resp.Header.Get("Location") != "" {
		return resp, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	t.statusCode = resp.StatusCode
	t.status = resp.Status
	if t.status == "" {
		t.status = http.StatusText(resp.StatusCode)
	}
	t.body = string(data)
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return resp, nil
}
