/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"strconv"
	"sync"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeAPI is an in-memory API. Tables are keyed by the string value of
// KeyAttribute; Scan pages are served from scanPages.
type fakeAPI struct {
	mu        sync.Mutex
	tables    map[string]map[string]map[string]types.AttributeValue
	scanPages map[string][][]map[string]types.AttributeValue
	scanErrs  []error
	scanCalls int
	putErr    error
	lastPut   *sdk.PutItemInput
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		tables:    make(map[string]map[string]map[string]types.AttributeValue),
		scanPages: make(map[string][][]map[string]types.AttributeValue),
	}
}

func keyString(key map[string]types.AttributeValue) string {
	if s, ok := key[KeyAttribute].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeAPI) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := f.tables[*in.TableName][keyString(in.Key)]
	return &sdk.GetItemOutput{Item: item}, nil
}

func (f *fakeAPI) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPut = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	table := *in.TableName
	if f.tables[table] == nil {
		f.tables[table] = make(map[string]map[string]types.AttributeValue)
	}
	f.tables[table][keyString(in.Item)] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeAPI) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tables[*in.TableName], keyString(in.Key))
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeAPI) Scan(ctx context.Context, in *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scanCalls++
	if len(f.scanErrs) > 0 {
		err := f.scanErrs[0]
		f.scanErrs = f.scanErrs[1:]
		return nil, err
	}

	page := 0
	if in.ExclusiveStartKey != nil {
		n := in.ExclusiveStartKey["_page"].(*types.AttributeValueMemberN)
		page, _ = strconv.Atoi(n.Value)
	}
	pages := f.scanPages[*in.TableName]
	if page >= len(pages) {
		return &sdk.ScanOutput{}, nil
	}

	out := &sdk.ScanOutput{Items: pages[page]}
	if page+1 < len(pages) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"_page": &types.AttributeValueMemberN{Value: strconv.Itoa(page + 1)},
		}
	}
	return out, nil
}
