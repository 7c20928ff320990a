// Package expcache provides an in-memory key-value cache with per-entry expiration
// and a shared background sweeper.
//
// Features:
//
//   - Concurrent map storage, safe for any number of readers and writers.
//   - Absolute expiration per entry, or no expiration at all.
//   - Expired entries are removed by a periodic sweep, not on read.
//   - Many caches share one Sweeper and its small worker pool instead of running
//     a goroutine each.
//   - A panic in one cache's sweep is logged and does not stop the others.
//   - Allows logging, stats collection.
//
// Expiration is a polling approximation: Get may return a value whose deadline has
// passed until the next sweep removes it.
package expcache
