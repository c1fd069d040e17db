// Package sheet ingests a CSV export of the check-in tracking spreadsheet.
//
// Each analyzed row (one with a non-empty summary) becomes an analysis-row
// record for the reconciliation engine. Malformed rows are logged and
// skipped so a single bad row never aborts a scan.
package sheet
