// Package server runs the storefront HTTP server and its background workers.
//
// It owns startup, signal handling and graceful shutdown.
package server
