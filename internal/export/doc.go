// Package export drives image exports: a single source to a single PNG, or a
// whole directory to an output directory.
//
// # Batch Runs
//
// A batch processes its items strictly in order on the calling goroutine.
// Before each item the run's context is checked; once it is cancelled the run
// appends "Export cancelled." to the summary and stops. Work already done is
// kept. An item that is being processed always finishes first, so callers
// that want to stay responsive should run RunBatch on its own goroutine and
// cancel the context from elsewhere.
//
// Per-item failures never abort a batch. They are folded into the Summary as
// messages prefixed with the item name, except an out-of-bounds crop, which
// only increments Skipped. Only an invalid configuration (naming mode, shape
// or target size) fails the whole batch, and it does so before any item is
// touched.
//
// # Progress
//
// One Progress event is delivered for each item as it starts, before its
// outcome is known, with a strictly increasing 1-based index.
package export
