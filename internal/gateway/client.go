package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/freshplate/ordering-client/internal/config"
	"github.com/freshplate/ordering-client/internal/errors"
	"github.com/freshplate/ordering-client/internal/metrics"
	"github.com/freshplate/ordering-client/internal/session"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client wraps the remote food-ordering REST API. It attaches the bearer
// token from the session holder to authorized calls and applies the
// one-shot 401 policy: refresh the access token, retry the original call
// exactly once, and force a logout when the refresh itself fails. All
// other failures are terminal for that call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Holder
}

func New(cfg *config.Config, sess *session.Holder) *Client {

	return &Client{
		baseURL: strings.TrimRight(cfg.Upstream.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Upstream.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		session: sess,
	}
}

// call runs one logical API call. endpoint is the metric label (path
// template), path the concrete request path. body is marshalled once so a
// 401 retry can replay the identical payload. out, when non-nil, receives
// the decoded 2xx response body.
func (c *Client) call(ctx context.Context, method, endpoint, path string, query url.Values, body, out any, authorized bool) error {

	var payload []byte

	if body != nil {
		var err error

		payload, err = json.Marshal(body)
		if err != nil {
			return errors.InternalError("Failed to encode request body").WithError(err)
		}
	}

	token := ""
	if authorized {
		token = c.session.AccessToken()
	}

	status, respBody, err := c.doOnce(ctx, method, endpoint, path, query, payload, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && authorized {

		if err := c.refreshAccessToken(ctx); err != nil {
			c.session.Logout()

			return errors.UnauthorizedError("Session expired, please log in again").WithError(err)
		}

		status, respBody, err = c.doOnce(ctx, method, endpoint, path, query, payload, c.session.AccessToken())
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized {
			c.session.Logout()

			return errors.UnauthorizedError("Session expired, please log in again")
		}
	}

	if status >= 400 {
		return decodeErrorBody(status, respBody)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.DecodeError(fmt.Sprintf("Unexpected response shape from %s", endpoint)).WithError(err)
	}

	return nil
}

// doOnce performs a single HTTP exchange. A missing response entirely is a
// network error; any response, whatever the status, is returned to the
// caller for policy handling.
func (c *Client) doOnce(ctx context.Context, method, endpoint, path string, query url.Values, payload []byte, token string) (int, []byte, error) {

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, errors.InternalError("Failed to build request").WithError(err)
	}

	req.Header.Set("Accept", "application/json")

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(method, endpoint, 0, time.Since(start))

		return 0, nil, errors.NetworkError("Ordering service is unreachable").WithError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)

	metrics.ObserveUpstream(method, endpoint, resp.StatusCode, time.Since(start))

	if err != nil {
		return 0, nil, errors.NetworkError("Failed to read response body").WithError(err)
	}

	return resp.StatusCode, respBody, nil
}

// refreshAccessToken runs the POST /token/refresh/ exchange and stores the
// replacement access token on success.
func (c *Client) refreshAccessToken(ctx context.Context) error {

	refresh := c.session.RefreshToken()
	if refresh == "" {
		metrics.ObserveTokenRefresh("failure")

		return errors.UnauthorizedError("No refresh token held")
	}

	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		metrics.ObserveTokenRefresh("failure")

		return errors.InternalError("Failed to encode refresh request").WithError(err)
	}

	status, respBody, err := c.doOnce(ctx, http.MethodPost, "/token/refresh/", "/token/refresh/", nil, payload, "")
	if err != nil {
		metrics.ObserveTokenRefresh("failure")

		return err
	}

	if status >= 400 {
		metrics.ObserveTokenRefresh("failure")

		return decodeErrorBody(status, respBody)
	}

	var refreshed struct {
		Access string `json:"access"`
	}

	if err := json.Unmarshal(respBody, &refreshed); err != nil || refreshed.Access == "" {
		metrics.ObserveTokenRefresh("failure")

		return errors.DecodeError("Unexpected response shape from /token/refresh/").WithError(err)
	}

	c.session.SetAccessToken(refreshed.Access)
	metrics.ObserveTokenRefresh("success")
	slog.Debug("Access token refreshed")

	return nil
}

// decodeErrorBody maps an upstream error response onto the client error
// taxonomy. Human-readable messages and field-keyed validation details are
// surfaced verbatim for the view layer; nothing is re-validated locally.
func decodeErrorBody(status int, body []byte) *errors.AppError {

	message := ""
	var fields map[string][]string

	var parsed map[string]json.RawMessage

	if err := json.Unmarshal(body, &parsed); err == nil {

		for _, key := range []string{"error", "detail", "message"} {
			if raw, ok := parsed[key]; ok {
				var s string
				if json.Unmarshal(raw, &s) == nil {
					message = s

					break
				}
			}
		}

		if message == "" {
			// DRF-style field-keyed validation errors: values are either a
			// list of strings or a single string
			for key, raw := range parsed {

				var list []string
				if json.Unmarshal(raw, &list) == nil {
					if fields == nil {
						fields = make(map[string][]string)
					}
					fields[key] = list

					continue
				}

				var single string
				if json.Unmarshal(raw, &single) == nil {
					if fields == nil {
						fields = make(map[string][]string)
					}
					fields[key] = []string{single}
				}
			}
		}
	}

	switch status {
	case http.StatusBadRequest:
		if message == "" {
			message = "Invalid request"
		}

		return errors.ValidationError(message).WithFields(fields)
	case http.StatusUnauthorized:
		if message == "" {
			message = "Not authorized"
		}

		return errors.UnauthorizedError(message)
	case http.StatusForbidden:
		if message == "" {
			message = "Forbidden"
		}

		return errors.ForbiddenError(message)
	case http.StatusNotFound:
		if message == "" {
			message = "Not found"
		}

		return errors.NotFoundError(message)
	case http.StatusConflict:
		if message == "" {
			message = "Conflict"
		}

		return errors.ConflictError(message)
	default:
		if message == "" {
			message = fmt.Sprintf("Ordering service returned status %d", status)
		}

		return errors.UpstreamError(message, status)
	}
}
