// Package remote mirrors the document to a relay over gRPC.
//
// A [Mirror] owns one subscription at a time. Start parses the connection
// configuration, health checks the relay and opens a snapshot stream; every
// snapshot is normalized with migrate.Migrate and handed to the [Listener].
// Push sends the whole document, last writer wins. Pushes are ordered: a
// single goroutine drains a bounded queue, and a full queue drops the push.
//
// Failures never propagate to the caller of Push. They move the mirror to
// [StateError], which behaves as local-only until the next Start.
package remote
