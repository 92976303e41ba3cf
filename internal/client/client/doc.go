// Package client is a thin HTTP client for the gophauth API. Non-2xx
// responses are returned as *APIError, which matches the package sentinels
// through errors.Is.
package client
