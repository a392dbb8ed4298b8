// Package productapi provides the HTTP adapter for the remote product search endpoint.
//
// The Client issues GET {baseURL}/product?keyword=..&from=..&size=.. with the
// client identifier in the X-Newaim-Api-Key header and maps every failure to
// *domain.TransportError. The RateLimiter paces requests to stay within the
// server's per-key budget and backs off after the server answers
// "fetch forbidden".
package productapi
