// Package server exposes the painting pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz              liveness and version
//	GET  /paintings/{seed}     render a painting; ?format=svg|png|json|pdf
//	POST /paintings            pick a random seed, render, return its links
//
// GET accepts the query parameters shapes, scale, layers, width and height,
// which override the server's base configuration for that request. Since a
// painting is a pure function of seed and configuration, GET responses are
// cacheable and carry an ETag.
//
// POST takes an optional JSON body with the same overrides:
//
//	{"shapes": 3, "layers": 80}
//
// and answers 201 with a UUID, the chosen seed and links to every format.
// The links carry the overrides, so they render the same painting.
//
// # Errors
//
// Failures are JSON objects {"error": "...", "code": "INVALID_INPUT"} with
// the status from errors.HTTPStatus.
package server
