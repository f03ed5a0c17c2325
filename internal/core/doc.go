// Package core implements the EDF decode-and-persist pipeline.
//
// This package contains all domain logic independent of any transport
// layer. It can be driven by HTTP handlers, CLI tools, or tests without
// modification.
//
// # Pipeline
//
// One ingestion is a linear unit of work:
//
//  1. Validate: file extension and payload size are checked before any
//     bytes touch disk.
//  2. Stage: the payload is written to a uniquely named temporary file,
//     released on every exit path.
//  3. Decode: the staged EDF container is materialized into a [Recording]
//     (channel names, time vector, sample matrix).
//  4. Project: the wide channel-by-time matrix is flattened into
//     [SampleRecord] rows in channel-major order.
//  5. Persist: all prior rows are deleted and the new rows inserted inside
//     a single transaction; any failure rolls the whole span back.
//
// # Persistence model
//
// Storage is a single flat table with full-replace semantics: every
// successful ingestion clears all prior rows, so the table always holds
// exactly one recording's worth of data. Concurrent ingestions race and
// the last transaction to commit wins; callers that need stronger
// guarantees must serialize uploads themselves.
//
// # Error Handling
//
// Failures carry a [Kind] (validation, decode, persistence, staging) that
// the transport layer maps to a status class. Staging release failures are
// logged and suppressed so they never mask the primary error.
package core
