// Package history persists firing outcomes to SQLite.
//
// The engine core returns no aggregate result from Fire; history is
// the durable layered-on record. Recorder implements engine.Listener
// and writes one sessions row per pass plus one firings row per event
// (triggered, applied, failed, threshold_exceeded), each stamped with
// a per-session sequence number so a pass can be read back in exact
// order.
//
// Only outcomes are stored. Rules themselves are code and are never
// persisted.
//
// A Recorder must never disturb the pass it observes: store errors are
// logged and swallowed, and the affected session is simply incomplete
// in the history.
package history
