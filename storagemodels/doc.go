/*
Package storagemodels defines the data structures shared by the storage tiers.

Key Types:

Record:
A plain structured value keyed by field name:

	rec := Record{"word": "shpi", "definitionEnglish": "house"}
	key, ok := rec.KeyValue("word") // "shpi", true

ScanResult:
Rows produced by a remote scan with metadata:

	type ScanResult struct {
	    Record Record   // Row in storage naming
	    Error  error    // Row or page error, if any
	    Meta   ScanMeta // Metadata about this row
	}

ScanOptions:
Configuration for remote scans:

	opts := []ScanOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}

These types provide a consistent interface across the local and remote drivers.
*/
package storagemodels
