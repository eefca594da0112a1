/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "time"

// ScanResult represents a single row of a remote scan with metadata
type ScanResult struct {
	Record Record   // Row in storage naming
	Error  error    // Row or page error, if any
	Meta   ScanMeta // Metadata about this row
}

// ScanMeta contains metadata about a scanned row
type ScanMeta struct {
	Index      int64     // Row index in scan (0-based)
	PageNumber int       // Page number (1-based)
	Timestamp  time.Time // When the row was retrieved
}

// ScanOptions configures remote scan behavior
type ScanOptions struct {
	BufferSize      int                // Channel buffer size (default: 100)
	MaxRetries      int                // Retry attempts for transient errors (default: 3)
	RetryBackoff    time.Duration      // Backoff between retries (default: 1s)
	PageSize        int32              // Rows per page (default: 100)
	ProgressHandler func(ScanProgress) // Optional progress callback
}

// ScanProgress tracks scan progress
type ScanProgress struct {
	RowsProcessed  int64     // Total rows processed
	PagesProcessed int       // Total pages processed
	StartTime      time.Time // When scanning started
	CurrentRate    float64   // Rows per second
}

// ScanOption is a functional option for configuring scans
type ScanOption func(*ScanOptions)

// DefaultScanOptions returns default scan options
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		BufferSize:   100,
		MaxRetries:   3,
		RetryBackoff: time.Second,
		PageSize:     100,
	}
}

// ApplyScanOptions returns the defaults with opts applied.
func ApplyScanOptions(opts ...ScanOption) ScanOptions {
	options := DefaultScanOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.BufferSize < 0 {
		options.BufferSize = 0
	}
	if options.PageSize <= 0 {
		options.PageSize = 100
	}
	return options
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) ScanOption {
	return func(opts *ScanOptions) {
		opts.BufferSize = size
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) ScanOption {
	return func(opts *ScanOptions) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) ScanOption {
	return func(opts *ScanOptions) {
		opts.RetryBackoff = backoff
	}
}

// WithPageSize sets the remote page size
func WithPageSize(size int32) ScanOption {
	return func(opts *ScanOptions) {
		opts.PageSize = size
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(ScanProgress)) ScanOption {
	return func(opts *ScanOptions) {
		opts.ProgressHandler = handler
	}
}
