package engine

import "errors"

// ErrDiscussionNotFound is returned in a turn's Step when a discussion ID was
// supplied but no matching record exists. The condition is user-visible and
// non-fatal; no session state is mutated.
var ErrDiscussionNotFound = errors.New("discussion not found")
