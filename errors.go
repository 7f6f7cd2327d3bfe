package tlsf

import "errors"

// ErrOutOfMemory is returned by Alloc when its search finds no free
// block large enough to satisfy the request.
var ErrOutOfMemory = errors.New("tlsf: out of memory")

// ErrTooSmallPool is returned by Supply when the donated region cannot
// hold an empty pool: two block headers plus a free block payload of at
// least MinBlockPayload (one free block plus its sentinel).
var ErrTooSmallPool = errors.New("tlsf: pool smaller than two block headers")
