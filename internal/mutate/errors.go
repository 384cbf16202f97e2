package mutate

import "errors"

var (
	// ErrEmptyText is returned by Add when the text is empty after trimming.
	ErrEmptyText = errors.New("task text is empty")

	// ErrIDsExhausted is returned by Add once no id above every existing one is left.
	ErrIDsExhausted = errors.New("task ids exhausted")
)
