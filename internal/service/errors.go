package service

import "errors"

var (
	ErrVenueNotFound  = errors.New("venue not found")
	ErrArtistNotFound = errors.New("artist not found")

	// ErrPersistence marks a failed write. The transaction was rolled back
	// and the wrapped cause says why.
	ErrPersistence = errors.New("could not save changes")
)
