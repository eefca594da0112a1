/*
Package ddb provides a DynamoDB implementation of the RemoteStore interface.

Each synced collection maps to one table named TablePrefix + collection whose
hash key is the string attribute KeyAttribute ("_key"). It holds the normalized
record key so that GetItem and DeleteItem are case-insensitive lookups, while
the record's own key field is stored exactly as the caller wrote it. The
attribute is stripped from fetched and scanned records.

	client, err := ddb.NewClient(ctx, ddb.Credentials{
	    AccessKey: os.Getenv("AWS_ACCESS_KEY"),
	    SecretKey: os.Getenv("AWS_SECRET_KEY"),
	    Region:    os.Getenv("AWS_REGION"),
	})
	remote := ddb.New(client, ddb.WithTablePrefix("prod_"), ddb.WithSignal(probe))

Scanning:
Scan pages through a table with retry on throttling:

	for row := range remote.Scan(ctx, registry.Dictionary,
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	) {
	    if row.Error != nil {
	        log.Printf("scan: %v", row.Error)
	        continue
	    }
	    // row.Record uses storage naming
	}
*/
package ddb
