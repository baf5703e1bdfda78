// Package organizer drives a single run end to end: scan the source
// directory, build the move plan, present it, wait on the confirmation
// gate, execute the moves, and summarize.
//
// The run is strictly sequential and the gate is its only suspension point.
// All collaborators that touch the operator (preview printer, gate,
// progress callbacks) are injected, so the pipeline itself stays free of
// terminal concerns and tests drive it without a TTY.
package organizer
