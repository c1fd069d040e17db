// Package report renders and persists the output of a reconciliation run.
//
// A Report is built from the resolved meeting instances and their gap
// analysis, saved as a timestamped JSON file, optionally exported as a
// CSV of gaps, and rendered as terminal tables (overall, by month, by
// counterpart).
package report
