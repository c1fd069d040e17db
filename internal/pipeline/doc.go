// Package pipeline orchestrates a full check-in scan: concurrent record
// collection from the enabled sources, engine resolution, gap analysis,
// and report generation.
//
// The pipeline owns all cross-source policy: sources run concurrently
// and join before resolution, and a failing source aborts the run
// instead of producing a report that silently understates coverage.
package pipeline
