// Package kernel holds the value objects shared by every aggregate of the
// workshop: UUID identifiers and Money amounts.
package kernel
