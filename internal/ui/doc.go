// Package ui provides the Bubble Tea storefront.
//
// The UI is a thin consumer of state.Store: it renders Snapshots and calls
// store operations, never holding data of its own beyond cursors and modal
// state. The store observer posts a change message into the program so
// remote pushes show up without a keypress; a one second tick also
// refreshes the snapshot and the activity log.
//
// # Views
//
//   - Catalog: the books, an item detail pane and AI suggestions (/)
//   - Cart: quantities, removal and checkout
//   - Orders: the order log, owner only; s advances an order's status
//   - Collections: curated lists resolved against the catalog
//   - About: the editable page content
//   - Activity: the application log, filtered by level
//
// Owner actions (n, e, d, s) need an owner login (L). Calls that may reach
// the remote run as commands so the event loop never waits on the network.
//
// # Key Bindings
//
//   - 1-6 or tab/shift+tab: switch views
//   - j/k, g/G: move, enter: open, esc: back
//   - T: cycle theme (saved to prefs), ?: help, q or ctrl+c: quit
package ui
