package domain

import "errors"

var (
	// ErrPageNotFound is returned when the encyclopedia has no article for a title
	ErrPageNotFound = errors.New("article not found")

	// ErrWikiAPIFailure is returned when an encyclopedia API request fails
	ErrWikiAPIFailure = errors.New("wiki API request failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrSlotEmpty is returned when a comparison is requested before both slots hold a spec
	ErrSlotEmpty = errors.New("comparison slot is empty")

	// ErrStaleResponse is returned when a fetch completes after a newer one was issued for the same slot
	ErrStaleResponse = errors.New("superseded by a newer request")

	// ErrSummaryFailure is returned when the external summarization call fails
	ErrSummaryFailure = errors.New("summary request failed")
)
