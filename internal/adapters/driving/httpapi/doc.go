// Package httpapi serves the chat service over HTTP.
//
// Endpoints:
//   - POST /chatbot: {"query": "..."} answered with {"response": "<label>"}
//   - GET /healthz: liveness and label count
//
// Requests pass through CORS, rate limiting and debug request logging
// before reaching the handlers.
package httpapi
