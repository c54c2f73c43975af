// Package storeerr converts document-store errors into application
// HTTP errors.
//
// It is the funnel between the record access layer and the global
// error handler: absence becomes a 404, everything else becomes a 500
// carrying the store's message.
package storeerr
