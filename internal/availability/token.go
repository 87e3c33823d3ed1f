package availability

import "sync/atomic"

// Token is a session-local request generation. A result stamped with a token
// older than the latest issued one is stale and must be discarded, not
// applied. This replaces true cancellation of in-flight checks.
type Token uint64

// TokenSource issues monotonically increasing tokens. Safe for concurrent
// use; each quote session owns one.
type TokenSource struct {
	n atomic.Uint64
}

// Next issues a fresh token, superseding all earlier ones.
func (s *TokenSource) Next() Token {
	return Token(s.n.Add(1))
}

// Latest returns the most recently issued token.
func (s *TokenSource) Latest() Token {
	return Token(s.n.Load())
}
