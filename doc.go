// Package pantry keeps a household's shopping lists, the inventory of what
// was bought and the ledger of what it cost.
//
// The central operation is marking a list item purchased: it flips the item's
// flag, stocks the product into the Inventory and records a "Purchase"
// expense. Each of those collections is its own document in a kv.Store and
// is persisted independently; the cascade is best-effort and never rolls
// back. Repeated or overlapping calls for the same item produce side effects
// exactly once.
//
// Amounts are decimal values in the Canonical currency. The user's display
// currency, theme and notification preferences live in the Settings and only
// affect rendering.
//
// This package is the foundation of the `gro` command-line tool.
package pantry
