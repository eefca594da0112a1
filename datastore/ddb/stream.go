/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

// Scan streams every item of the collection table, page by page, retrying
// throttled pages. A page that still fails is reported once and ends the scan.
func (s *Store) Scan(ctx context.Context, c registry.Collection, opts ...storagemodels.ScanOption) <-chan storagemodels.ScanResult {
	options := storagemodels.ApplyScanOptions(opts...)

	resultCh := make(chan storagemodels.ScanResult, options.BufferSize)

	if s.api == nil {
		go func() {
			defer close(resultCh)
			select {
			case <-ctx.Done():
			case resultCh <- storagemodels.ScanResult{Error: errors.NewRemoteError("scan", string(c), errNoClient)}:
			}
		}()
		return resultCh
	}

	go s.scanWorker(ctx, c, options, resultCh)

	return resultCh
}

// scanWorker handles the actual paging logic
func (s *Store) scanWorker(
	ctx context.Context,
	c registry.Collection,
	options storagemodels.ScanOptions,
	resultCh chan<- storagemodels.ScanResult,
) {
	defer close(resultCh)

	var rowIndex int64
	var pageNumber int
	startTime := time.Now()

	reportProgress := func() {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.ScanProgress{
			RowsProcessed:  atomic.LoadInt64(&rowIndex),
			PagesProcessed: pageNumber,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.RowsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	input := &dynamodb.ScanInput{
		TableName: aws.String(s.TableName(c)),
		Limit:     aws.Int32(options.PageSize),
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		out, err := s.scanWithRetry(ctx, input, options)
		if err != nil {
			select {
			case <-ctx.Done():
			case resultCh <- storagemodels.ScanResult{
				Error: errors.NewRemoteError("scan", string(c), err),
				Meta: storagemodels.ScanMeta{
					Index:      atomic.LoadInt64(&rowIndex),
					PageNumber: pageNumber + 1,
					Timestamp:  time.Now(),
				},
			}:
			}
			return
		}

		pageNumber++

		for _, item := range out.Items {
			meta := storagemodels.ScanMeta{
				Index:      atomic.LoadInt64(&rowIndex),
				PageNumber: pageNumber,
				Timestamp:  time.Now(),
			}
			result := storagemodels.ScanResult{Meta: meta}
			rec, err := unmarshalRecord(item)
			if err != nil {
				result.Error = errors.NewRemoteError("scan", string(c), err)
			} else {
				result.Record = rec
			}
			atomic.AddInt64(&rowIndex, 1)

			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}
		}

		reportProgress()

		if len(out.LastEvaluatedKey) == 0 {
			return
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// scanWithRetry executes one page with configurable retry logic
func (s *Store) scanWithRetry(
	ctx context.Context,
	input *dynamodb.ScanInput,
	options storagemodels.ScanOptions,
) (*dynamodb.ScanOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := s.api.Scan(ctx, input)
		if err == nil {
			return out, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}

		// Don't sleep after last attempt
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

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	switch err.(type) {
	case *types.ProvisionedThroughputExceededException:
		return true
	case *types.RequestLimitExceeded:
		return true
	case *types.InternalServerError:
		return true
	}

	// Check for AWS SDK retryable errors
	if awsErr, ok := err.(interface{ IsRetryable() bool }); ok {
		return awsErr.IsRetryable()
	}

	return false
}
