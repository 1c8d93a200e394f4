// Package dashboard serves the server-rendered monitoring page at GET /.
// The template is embedded in the binary; the page renders the current
// status, aggregate counts, and the recent reading window, then keeps
// itself fresh over the /ws/live WebSocket feed.
package dashboard
