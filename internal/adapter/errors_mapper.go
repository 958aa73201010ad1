package adapter

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const maxErrorBodyLen = 256

// checkResponse classifies resp. Codes listed in handled are accepted as is.
func checkResponse(resp *resty.Response, handled ...int) error {
	code := resp.StatusCode()

	// 401 comes from the authentication layer before any ODK handler runs
	if code == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrAccessDenied, describe(resp))
	}

	if resp.Header().Get(HeaderVersion) == "" {
		return fmt.Errorf("%w: %s %s", ErrNotOpenDataKitServer, resp.Request.Method, resp.Request.URL)
	}

	if slices.Contains(handled, code) {
		return nil
	}

	switch {
	case code >= http.StatusOK && code < http.StatusMultipleChoices:
		return fmt.Errorf("%w: %s", ErrClientDetectedVersionMismatch, describe(resp))
	case code >= http.StatusBadRequest && code < http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrServerDetectedVersionMismatch, describe(resp))
	case code >= http.StatusInternalServerError && code < 600:
		return fmt.Errorf("%w: %s", ErrInternalServerFailure, describe(resp))
	default:
		return fmt.Errorf("%w: %s", ErrUnexpectedRedirect, describe(resp))
	}
}

// describe renders the status and the server's message, if any.
func describe(resp *resty.Response) string {
	msg := serverMessage(resp.Body())
	if msg == "" {
		return fmt.Sprintf("unexpected server response status %d", resp.StatusCode())
	}
	return fmt.Sprintf("unexpected server response status %d: %s", resp.StatusCode(), msg)
}

// serverMessage extracts the "message" of a JSON error body, falling back to
// the (truncated) raw text.
func serverMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "message"); msg.Exists() {
			return msg.String()
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBodyLen {
		text = text[:maxErrorBodyLen] + "..."
	}
	return text
}

// transportError classifies a failure to obtain any response.
func transportError(op string, err error) error {
	if errors.Is(err, ErrAccessDeniedReauth) {
		return err
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %s: unknown host %s: %w", ErrBadClientConfig, op, dnsErr.Name, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && strings.Contains(urlErr.Err.Error(), "unsupported protocol scheme") {
		return fmt.Errorf("%w: %s: malformed URL: %w", ErrBadClientConfig, op, err)
	}

	return fmt.Errorf("%w: %s: %w", ErrNetworkTransmission, op, err)
}
