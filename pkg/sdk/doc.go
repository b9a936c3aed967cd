// Package projectsearch embeds the infrastructure project search engine in a
// Go program. The dataset comes from local files (GeoJSON or Parquet) or from
// a Redis/Valkey key that several processes share.
//
//	client, _ := projectsearch.New(ctx,
//	    projectsearch.WithFiles("data/projects.geojson"),
//	)
//	defer client.Close()
//	hits, _ := client.Search(ctx, "miami beach")
//
// With a shared store, one process publishes and the others reload:
//
//	client, _ := projectsearch.New(ctx,
//	    projectsearch.WithValkey("localhost:6379", ""),
//	    projectsearch.WithStoreKey("projectsearch:dataset"),
//	)
//	n, _ := client.Reload(ctx)
//
// Results are ranked by field relevance (project name first) and capped at
// ten per query.
package projectsearch
