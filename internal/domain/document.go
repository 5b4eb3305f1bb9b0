package domain

import "time"

// DocumentKind identifies the source format of an uploaded roster.
type DocumentKind string

const (
	// DocumentCSV is a comma-delimited export.
	DocumentCSV DocumentKind = "csv"
	// DocumentTSV is a tab-delimited export.
	DocumentTSV DocumentKind = "tsv"
	// DocumentXLSX is a spreadsheet export.
	DocumentXLSX DocumentKind = "xlsx"
	// DocumentText is a page-table text extract with no reliable grid.
	DocumentText DocumentKind = "text"
)

// DocumentStatus tracks a document through the import flow.
type DocumentStatus string

const (
	// DocumentStatusProcessing means an import is in flight.
	DocumentStatusProcessing DocumentStatus = "processing"
	// DocumentStatusProcessed means the import completed and its records are live.
	DocumentStatusProcessed DocumentStatus = "processed"
	// DocumentStatusFailed means the document could not be read.
	DocumentStatusFailed DocumentStatus = "failed"
)

// Document records one uploaded source file for import auditing.
type Document struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	Kind       DocumentKind   `json:"kind"`
	SizeBytes  int64          `json:"size_bytes"`
	Status     DocumentStatus `json:"status"`
	RowCount   int            `json:"row_count"`
	UploadedAt time.Time      `json:"uploaded_at"`
}

// ImportResult is the operator-facing outcome of one import run.
//
// Warnings describe rows that were skipped or partially rescued; Errors
// describe rows that could not be stored at all. Both are plain messages,
// returned alongside the success count so partial progress stays visible.
type ImportResult struct {
	DocumentID string   `json:"document_id"`
	Imported   int      `json:"imported"`
	Warnings   []string `json:"warnings"`
	Errors     []string `json:"errors"`
}
