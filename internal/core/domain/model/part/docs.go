// Package part models the parts catalog and its append-only stock movements.
//
// A part's quantity always equals the sum of its movement deltas. Debits come
// from order completion, credits from stock receipts and from reversals
// written when a completed order is reopened.
package part
