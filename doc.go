// Package catalogpager provides the pagination and query-construction engine
// used by every list endpoint of the library catalog.
//
// Overview
//
// catalogpager implements two pagination modes:
//   - Keyset (seek) pagination: a PageCursor (After or Before an ordering key)
//     is resolved against an EntityDescriptor into a QueryPlan that seeks past
//     the key with a strict comparison and returns at most Items rows, always
//     in ascending key order. Pages never drift under concurrent inserts.
//   - Offset pagination: an OffsetPager wraps an arbitrary, already filtered
//     GORM query with LIMIT/OFFSET and a windowed total count, so the caller
//     gets the number of pages in the same round trip.
//
// Key concepts
//   - Catalog: a static table of EntityDescriptor values describing how each
//     resource is listed, optionally scoped to a parent.
//   - QueryPlan: pure data describing what to select, filter, order and limit.
//     Apply renders it onto a *gorm.DB, ToSQL renders it as a statement.
//   - Find and FindPage: the GORM execution adapter.
//
// Everything except Find and FindPage is free of I/O and safe for concurrent
// use.
package catalogpager
