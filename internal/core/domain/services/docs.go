// Package services holds domain services spanning several aggregates.
//
// Settlement turns an order's items into stock debits and an income
// transaction at completion, and into reversals and a void at reopen.
package services
