// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the books-explorer proxy:
// the search request, the projected result item, the response envelope, and
// the configuration structs shared by the handler, the adapters, and the CLI.
package types

// SearchRequest carries the caller's query. Query may be empty; the handler
// substitutes its default term.
type SearchRequest struct {
	Query string `json:"q" yaml:"q"`
}

// Item is the minimal projection of an upstream volume record. Title and
// PublishedDate are nil when the upstream field is absent or empty. Authors
// is never nil so it always encodes as a JSON array.
type Item struct {
	ID            string   `json:"id" yaml:"id"`
	Title         *string  `json:"title" yaml:"title"`
	Authors       []string `json:"authors" yaml:"authors"`
	PublishedDate *string  `json:"publishedDate" yaml:"publishedDate"`
}

// SearchBody is the JSON body of a successful search response.
type SearchBody struct {
	Items []Item `json:"items" yaml:"items"`
}

// ErrorBody is the JSON body of every failed response.
type ErrorBody struct {
	Message string `json:"message" yaml:"message"`
}

// Envelope is the transport-neutral response returned by the handler. Body
// is always a JSON document.
type Envelope struct {
	StatusCode int               `json:"statusCode" yaml:"statusCode"`
	Headers    map[string]string `json:"headers" yaml:"headers"`
	Body       string            `json:"body" yaml:"body"`
}
