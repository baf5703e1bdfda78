// Package mover executes a move plan: one collision-safe move per planned
// item, in plan order, with every failure isolated to its own file.
//
// Renames stay atomic when source and destination share a filesystem. A
// cross-device rename falls back to copy plus source removal, optionally
// checksum-verified. Destinations are never overwritten; occupied names get
// a bounded numeric suffix probe.
package mover
