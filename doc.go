// Package fastauth is a pluggable authentication add-on for web
// applications: it registers and logs in users, issues opaque bearer
// access tokens, and verifies them on each request through a volatile
// cache fronting the durable user store.
//
// Token verification is cache-aside with write correction: Register,
// Login, and Delete write through to the cache, IsAuthenticated reads
// the cache first and repairs it from the store on a miss. Cache
// entries expire after ten minutes, staleness inside that window is a
// deliberate trade for lookup speed.
//
// User model substitution:
//   - The Service is generic over UserRecord. Embed the default User in
//     your own model to add fields while keeping the persistence and
//     HTTP surface intact.
//
// Lifecycle events:
//   - Hosts hook on_register, on_login, and on_delete through On. Each
//     event holds a single handler slot, registering again replaces the
//     previous handler. Handlers run inline after the store and cache
//     writes, a handler error fails the triggering call.
package fastauth
