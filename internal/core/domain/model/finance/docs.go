// Package finance models the financial ledger entries touched by the order
// lifecycle.
package finance
