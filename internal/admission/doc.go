// Package admission decides whether a subject key may issue another request
// within the current UTC calendar day.
//
// A Store keeps one event log per key and applies prune-append-count as a
// single atomic step. A Policy compares the resulting count against a daily
// quota. Denied attempts are recorded too, so a caller who keeps retrying
// stays denied until the next UTC midnight.
package admission
