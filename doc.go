/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

// Package tlsf implements a Two-Level Segregated Fit memory allocator.
//
// TLSF indexes free blocks in a matrix of segregated free lists keyed
// by a first-level (power-of-two) and second-level (linear
// subdivision) index, backed by two bitmaps that summarise which
// cells are non-empty. Both allocation and deallocation run in a
// bounded number of bit scans and pointer updates, independent of how
// many blocks the pool currently holds.
//
// The Manager never allocates pool memory itself: callers supply
// externally-owned regions via Supply, and the subpackage supply
// provides ready-made suppliers (a plain heap-backed one and, on
// unix, an anonymous-mmap-backed one).
//
// IMPORTANT: a Manager is NOT goroutine-safe. Concurrent access from
// multiple goroutines is not supported and may lead to race
// conditions. Callers that need to share a Manager across goroutines
// must serialise every call behind a single mutex; the free-list
// index and block topology cannot be locked at finer granularity
// because a single public call may touch both.
package tlsf
