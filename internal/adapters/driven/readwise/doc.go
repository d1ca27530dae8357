// Package readwise implements the HighlightSource port against the
// Readwise REST API (v2).
//
// Both listings are fetched as a single page of up to page_size items,
// authenticated with "Authorization: Token <token>". The client
// throttles proactively and honours Retry-After on 429 responses.
package readwise
