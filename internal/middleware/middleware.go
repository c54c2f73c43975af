// Package middleware contains the HTTP middleware stack: CORS,
// request logging, panic recovery, secure headers, request IDs, the
// request-scoped logger enhancer, and the global error handler.
package middleware
