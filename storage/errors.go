package storage

import "errors"

// ErrPoolExhausted indicates every slot of a pool is live.
var ErrPoolExhausted = errors.New("storage: pool exhausted")
