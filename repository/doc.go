// Package repository provides the generic lifecycle repository built on Bun:
// soft-delete-aware reads, conditional updates, soft delete, restore and
// pagination over any entity embedding entity.Record, plus the association
// engine and one repository per portal entity.
package repository
