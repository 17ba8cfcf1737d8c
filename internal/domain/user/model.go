// Package user describes the authenticated caller.
package user

// Principal identifies the authenticated account behind a request.
type Principal struct {
	UserID string
	Name   string
}
