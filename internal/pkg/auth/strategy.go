package auth

import "time"

// Strategy abstracts the token scheme so the transport layer does not
// depend on a concrete signing implementation.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes strategy construction.
type Options struct {
	TTL time.Duration
}
