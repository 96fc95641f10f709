// Package models defines the core domain models for sitepay.
//
// The persisted unit is the Document: the payout configuration, the fleet
// roster, and the list of cleared sites. Everything else (CalculationResult
// and its parts) is derived, recomputed on demand, and never treated as a
// source of truth.
//
// Design notes:
//   - Levels are keyed by a single canonical integer type (Level). The JSON
//     form still uses string keys ("1".."10") because that is how Go encodes
//     integer-keyed maps, so exported documents stay compatible.
//   - Members are referenced from sites by ID, never by pointer. IDs are
//     stable across renames.
//   - Amounts are integer ISK at rest. Fractional shares only exist
//     transiently inside the calculation engine.
package models
