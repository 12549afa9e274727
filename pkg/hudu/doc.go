// Package hudu defines the public surface of the Hudu API client:
// the Client interface, configuration, typed resource structs,
// request/filter types, error kinds, the response payload classifier,
// lookup tables, and the cache backends used to persist them.
//
// Construct clients with the huduclient package:
//
//	client, err := huduclient.New(ctx, &hudu.Config{
//		Domain: "docs.example.com",
//		APIKey: os.Getenv("HUDU_API_KEY"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	articles, err := client.Articles().List(ctx, nil)
//
// List calls transparently walk the API's pagination and return the
// complete result set; see internal/client for the request engine.
package hudu
