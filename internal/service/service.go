// Package service contains the business logic.
//
// It sits between the handler and record access layers: it receives
// validated data from handlers, applies the domain rules (timestamp
// contracts, credential resolution, result mapping), and calls the
// store or the newsletter provider.
package service
