// Package http implements the HTTP transport layer of the storefront.
//
// It exposes route wiring, request handlers and middleware for the JSON API.
// Tracing, access logging, metrics and the browser session cookie are handled
// here before requests are delegated to the service layer.
package http
