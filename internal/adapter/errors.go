package adapter

import "errors"

// Protocol failure classes. Every error returned by a [Synchronizer] wraps
// exactly one of these, so callers can map failures with [errors.Is].
var (
	// ErrAccessDenied is returned when the server answers 401.
	ErrAccessDenied = errors.New("access denied")

	// ErrAccessDeniedReauth is returned when the configured bearer token has
	// expired and must be renewed before any request can succeed.
	ErrAccessDeniedReauth = errors.New("access denied, credentials must be renewed")

	// ErrBadClientConfig is returned when the server URL cannot be reached
	// as configured (unknown host, malformed URL) or does not implement the
	// ODK REST API at all.
	ErrBadClientConfig = errors.New("bad client configuration")

	// ErrClientDetectedVersionMismatch is returned when the server answers
	// with a success code the client does not expect for the request.
	ErrClientDetectedVersionMismatch = errors.New("client detected version mismatch with server response")

	// ErrServerDetectedVersionMismatch is returned for 4xx answers other
	// than 401: the server rejected the request shape.
	ErrServerDetectedVersionMismatch = errors.New("server detected version mismatch with client request")

	// ErrInternalServerFailure is returned for 5xx answers.
	ErrInternalServerFailure = errors.New("internal server failure")

	// ErrNetworkTransmission is returned when the request could not be
	// completed at the transport level.
	ErrNetworkTransmission = errors.New("network transmission failure")

	// ErrNotOpenDataKitServer is returned when a response lacks the ODK
	// version header, typically a captive portal.
	ErrNotOpenDataKitServer = errors.New("not an OpenDataKit server")

	// ErrUnexpectedRedirect is returned for 3xx answers the request did not
	// anticipate.
	ErrUnexpectedRedirect = errors.New("unexpected server redirect")

	// ErrServerDoesNotRecognizeAppName is returned when the app name is not
	// in the server's application list.
	ErrServerDoesNotRecognizeAppName = errors.New("server does not recognize app name")

	// ErrMalformedResponse is returned when a response body cannot be
	// decoded into the expected resource.
	ErrMalformedResponse = errors.New("malformed server response")
)
