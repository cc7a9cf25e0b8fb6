// Package server wires the HTTP surface: the public echo instance that serves
// static assets and rendered pages, and the optional admin listener exposing
// metrics, liveness and build information.
package server
