/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

// Scan streams every row of the collection table ordered by its key column,
// one OFFSET page at a time. Transient page failures are retried.
func (s *Store) Scan(ctx context.Context, c registry.Collection, opts ...storagemodels.ScanOption) <-chan storagemodels.ScanResult {
	options := storagemodels.ApplyScanOptions(opts...)
	resultCh := make(chan storagemodels.ScanResult, options.BufferSize)

	go func() {
		defer close(resultCh)

		send := func(r storagemodels.ScanResult) bool {
			select {
			case <-ctx.Done():
				return false
			case resultCh <- r:
				return true
			}
		}

		if s.db == nil {
			send(storagemodels.ScanResult{Error: errors.NewRemoteError("scan", string(c), errNoClient)})
			return
		}
		keyColumn := s.reg.KeyPath(c)
		if keyColumn == "" {
			send(storagemodels.ScanResult{Error: errors.NewUnknownCollectionError(string(c))})
			return
		}

		startTime := time.Now()
		pageSize := int(options.PageSize)
		var index int64

		for page := 1; ; page++ {
			recs, err := s.pageWithRetry(ctx, c, keyColumn, (page-1)*pageSize, pageSize, options)
			if err != nil {
				send(storagemodels.ScanResult{
					Error: errors.NewRemoteError("scan", string(c), err),
					Meta:  storagemodels.ScanMeta{Index: index, PageNumber: page, Timestamp: time.Now()},
				})
				return
			}

			for _, rec := range recs {
				if !send(storagemodels.ScanResult{
					Record: rec,
					Meta:   storagemodels.ScanMeta{Index: index, PageNumber: page, Timestamp: time.Now()},
				}) {
					return
				}
				index++
			}

			if options.ProgressHandler != nil {
				p := storagemodels.ScanProgress{RowsProcessed: index, PagesProcessed: page, StartTime: startTime}
				if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
					p.CurrentRate = float64(index) / elapsed
				}
				options.ProgressHandler(p)
			}

			if len(recs) < pageSize {
				return
			}
		}
	}()

	return resultCh
}

func (s *Store) pageWithRetry(ctx context.Context, c registry.Collection, keyColumn string, offset, limit int, options storagemodels.ScanOptions) ([]storagemodels.Record, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		recs, err := s.page(ctx, c, keyColumn, offset, limit)
		if err == nil {
			return recs, nil
		}
		lastErr = err

		if !isTransient(err) {
			return nil, err
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("scan failed after %d retries: %w", options.MaxRetries, lastErr)
}

func (s *Store) page(ctx context.Context, c registry.Collection, keyColumn string, offset, limit int) ([]storagemodels.Record, error) {
	rows, err := pageQuery(s.db.WithContext(ctx), c, keyColumn, offset, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storagemodels.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
