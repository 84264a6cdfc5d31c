// Package shop defines the storefront data model.
//
// # Types
//
//   - Item: a catalog entry. Price is a decimal amount, Stock a count.
//   - CartLine: an Item snapshot plus a quantity. The embedded price is the
//     price captured when the line was added, never re-read from the catalog.
//   - Order: checkout record. Items, Total, Customer and Date are fixed at
//     creation; only Status changes afterwards.
//   - Status: closed set (Pending, Preparing, Shipped, Delivered, Cancelled).
//     Labels written by earlier variants ("Out for Delivery", "canceled") are
//     mapped onto the set when decoded.
//   - Collection: a named set of item ids. Unknown ids are tolerated.
//   - PageContent: the singleton site copy record.
//
// # Identity
//
// Item and collection ids are normalized to strings at every ingestion
// point. ID.UnmarshalJSON accepts JSON numbers so data persisted by older
// builds (numeric ids) compares equal to remote string ids.
//
// # Money
//
// Totals are summed in integer cents (Cents/FromCents) to keep float drift
// out of cart and order totals.
package shop
