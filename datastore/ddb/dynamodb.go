/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dualstore/connectivity"
	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/keys"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

// API is the subset of the DynamoDB client used by Store.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

var errNoClient = stderrors.New("no DynamoDB client configured")

// KeyAttribute is the hash key of every collection table. It holds the
// normalized record key; the record's own key field keeps the caller's value.
const KeyAttribute = "_key"

// Credentials configures NewClient.
type Credentials struct {
	AccessKey string
	SecretKey string
	Region    string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// Store implements datastore.RemoteStore on DynamoDB with one table per
// collection. Items are addressed by KeyAttribute, so a GetItem on the
// normalized key is the case-insensitive match.
type Store struct {
	api         API
	signal      connectivity.Signal
	tablePrefix string
}

// Option configures a Store.
type Option func(*Store)

// WithTablePrefix prepends prefix to every collection table name.
func WithTablePrefix(prefix string) Option {
	return func(s *Store) {
		s.tablePrefix = prefix
	}
}

// WithSignal sets the connectivity signal consulted by Active. The default is
// always online.
func WithSignal(sig connectivity.Signal) Option {
	return func(s *Store) {
		s.signal = sig
	}
}

// NewClient initializes a DynamoDB client using static AWS credentials.
func NewClient(ctx context.Context, creds Credentials) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(creds.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if creds.Endpoint != "" {
			o.BaseEndpoint = aws.String(creds.Endpoint)
		}
	})
	return client, nil
}

// New returns a Store over api. A nil api yields a Store that is never active.
func New(api API, opts ...Option) *Store {
	s := &Store{api: api, signal: connectivity.Always}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromCredentials builds the client and the Store in one step.
func NewFromCredentials(ctx context.Context, creds Credentials, opts ...Option) (*Store, error) {
	client, err := NewClient(ctx, creds)
	if err != nil {
		return nil, err
	}
	return New(client, opts...), nil
}

// TableName returns the table backing c.
func (s *Store) TableName(c registry.Collection) string {
	return s.tablePrefix + string(c)
}

// Active reports whether a client exists and the signal is online.
func (s *Store) Active() bool {
	return s.api != nil && s.signal != nil && s.signal.Online()
}

// FetchOne retrieves the item whose KeyAttribute equals the normalized key.
// It returns nil, nil when there is no such item.
func (s *Store) FetchOne(ctx context.Context, c registry.Collection, keyColumn, key string) (storagemodels.Record, error) {
	if s.api == nil {
		return nil, errors.NewRemoteError("fetch", string(c), errNoClient)
	}

	out, err := s.api.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(s.TableName(c)),
		Key:       keyAttr(key),
	})
	if err != nil {
		return nil, errors.NewRemoteError("fetch", string(c), fmt.Errorf("GetItem error: %w", err))
	}
	if out.Item == nil {
		return nil, nil
	}

	rec, err := unmarshalRecord(out.Item)
	if err != nil {
		return nil, errors.NewRemoteError("fetch", string(c), err)
	}
	return rec, nil
}

// Upsert writes rec as a whole item, replacing any previous item with the same key.
func (s *Store) Upsert(ctx context.Context, c registry.Collection, keyColumn string, rec storagemodels.Record) error {
	if s.api == nil {
		return errors.NewRemoteError("upsert", string(c), errNoClient)
	}

	key, ok := rec.KeyValue(keyColumn)
	if !ok {
		return errors.NewRemoteError("upsert", string(c), errors.NewKeyMissingError(string(c), keyColumn))
	}

	item, err := attributevalue.MarshalMap(map[string]any(rec))
	if err != nil {
		return errors.NewRemoteError("upsert", string(c), fmt.Errorf("failed to marshal item: %w", err))
	}
	item[KeyAttribute] = &types.AttributeValueMemberS{Value: keys.Normalize(key)}

	_, err = s.api.PutItem(ctx, &sdk.PutItemInput{
		TableName: aws.String(s.TableName(c)),
		Item:      item,
	})
	if err != nil {
		return errors.NewRemoteError("upsert", string(c), fmt.Errorf("PutItem error: %w", err))
	}
	return nil
}

// DeleteOne removes the item with the normalized key. Deleting an absent item succeeds.
func (s *Store) DeleteOne(ctx context.Context, c registry.Collection, keyColumn, key string) error {
	if s.api == nil {
		return errors.NewRemoteError("delete", string(c), errNoClient)
	}

	_, err := s.api.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(s.TableName(c)),
		Key:       keyAttr(key),
	})
	if err != nil {
		return errors.NewRemoteError("delete", string(c), fmt.Errorf("DeleteItem error: %w", err))
	}
	return nil
}

func keyAttr(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		KeyAttribute: &types.AttributeValueMemberS{Value: keys.Normalize(key)},
	}
}

func unmarshalRecord(item map[string]types.AttributeValue) (storagemodels.Record, error) {
	var m map[string]any
	if err := attributevalue.UnmarshalMap(item, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	delete(m, KeyAttribute)
	return storagemodels.Record(m), nil
}
