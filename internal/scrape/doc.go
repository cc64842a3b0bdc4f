// Package scrape turns upstream fetches into queryable documents and provides
// the selector cascade primitives the extractors are written in.
package scrape
