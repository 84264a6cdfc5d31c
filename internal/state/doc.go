// Package state implements the storefront's state manager.
//
// # Overview
//
// A Store aggregates everything the storefront shows and mutates: the
// catalog, the owner's collections, the shopping cart, the order history,
// the page content and the owner session flag. The UI reads immutable
// Snapshots and calls Store methods; it never touches the aggregates
// directly.
//
// # Persistence
//
// Every mutation is written synchronously to the local key-value store
// (internal/localstore), one key per aggregate, whole-value replace. Local
// writes are best-effort: failures are logged and the in-memory state stays
// authoritative.
//
// The catalog and the page content are also mirrored to a remote document
// store (internal/remote) when one is configured. With no remote the store
// runs local-only, seeded from the built-in defaults in internal/shop.
//
// # Remote consistency
//
// The two remote-backed aggregates follow different policies:
//
//	Catalog (many records):   optimistic apply, remote write, keep the local
//	                          change on failure and log it.
//	Content (singleton):      optimistic apply, remote write, roll back and
//	                          return the error on failure.
//
// Items created while the remote is unreachable get a "local_" id so they
// can be told apart from remote-issued ids.
//
// Remote subscriptions replace local state wholesale. A non-empty catalog
// snapshot replaces the cache. The first empty snapshot keeps the current
// catalog and seeds the remote with it; once the remote is known to be
// populated an empty snapshot empties the cache.
//
// Snapshots and local writes race: whichever lands last wins. Pushes carry
// no version, so an older snapshot arriving after a local edit overwrites
// it until the next push.
//
// # Concurrency Model
//
// Remote callbacks run on adapter goroutines while the UI calls in from its
// own, so all state sits behind a sync.RWMutex. The lock is never held
// during remote I/O. Observers registered with Subscribe are called after
// each change, outside the lock, with a fresh Snapshot.
//
// # Owner gate
//
// Catalog edits, collection edits, content saves and order status changes
// return ErrUnauthorized unless the owner is logged in. The owner secret is
// either plain text or a bcrypt hash.
package state
