// Package utils provides the low-level HTTP plumbing shared by the llmsdk
// providers: sending a prepared request, enforcing a 2xx status, reading and
// closing the body, and emitting span events when an observer span is present
// in the context.
//
// Key entry points: [DoSync] for request/response round-trips, [DoGet] for
// plain downloads, and [TruncateString] for bounded log and error previews.
package utils
