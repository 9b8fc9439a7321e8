// Package core provides the business logic for CSV analysis and charting.
//
// This package holds all domain logic independent of the HTTP layer. It can be
// used by web handlers or tests without modification.
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Frame: the typed result of parsing a CSV file. Every column carries a
//     [ColumnKind] decided once at parse time.
//   - Table: the numeric-only view that survives ingestion. Cells are tagged
//     [Value]s, either a number or [Missing].
//   - Store: a single slot holding the current Table. Ingestion builds a new
//     Table in full and swaps it in; readers always see a complete snapshot.
//   - Service: the main entry point for all operations (ingest, charts,
//     export).
//
// # Ingestion
//
// [Service.Ingest] runs the pipeline:
//
//  1. Reject filenames without a .csv suffix
//  2. Parse the file into a [Frame] and tag each column
//  3. Keep the first [MaxColumns] columns, then the first [MaxRows] rows
//  4. Drop every column that is not numeric
//  5. Describe each column and count its empty cells
//  6. Publish the Table to the [Store]
//
// # Charts
//
// [Scatter], [Bar], [Histogram] and [Heatmap] read a Table and return a
// renderer-agnostic [Chart]. They never mutate or cache anything.
//
// # Error Handling
//
// Domain failures are returned as [*Error] values carrying an [ErrorKind].
// Use errors.Is with [ErrInvalidInput], [ErrMalformedData], [ErrNoData],
// [ErrUnknownColumn] or [ErrBusy] to test for them. [MapError] converts any
// error into a user-facing message with a support code:
//
//   - FILE001-FILE006: File errors (size, encoding, format, form)
//   - TBL001-TBL004: Table errors (nothing uploaded, unknown column, bad query)
//   - UPL001-UPL003: Upload errors (busy, cancelled, timeout)
package core
