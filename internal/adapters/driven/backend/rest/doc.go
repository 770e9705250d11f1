// Package rest implements driven.Backend over the hospital's JSON REST API.
//
// Authenticated requests carry a bearer token from SessionTokenSource, an
// oauth2.TokenSource backed by the stored session that refreshes through
// POST /auth/refresh-token when the access token expires. A 401 response
// forces one refresh and retry. Requests are throttled with a token bucket
// and tagged with an X-Request-ID header.
//
// Transport failures wrap domain.ErrBackendUnavailable; error bodies decode
// into *APIError, which wraps the domain error for its status.
package rest
