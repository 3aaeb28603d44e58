package readerrors

import (
	"errors"
	"maps"
)

// HasMetadata indicates that the error has metadata defined.
type HasMetadata interface {
	// DetailsMetadata returns the metadata for details for this error.
	DetailsMetadata() map[string]string
}

// DetailsOf collects the metadata of every error in err's tree that defines
// some. Keys found closer to the root win.
func DetailsOf(err error) map[string]string {
	details := map[string]string{}
	collectDetails(err, details)
	return details
}

func collectDetails(err error, into map[string]string) {
	if err == nil {
		return
	}

	if withMetadata, ok := err.(HasMetadata); ok {
		for key, value := range withMetadata.DetailsMetadata() {
			if _, exists := into[key]; !exists {
				into[key] = value
			}
		}
	}

	switch wrapped := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range wrapped.Unwrap() {
			collectDetails(inner, into)
		}
	default:
		collectDetails(errors.Unwrap(err), into)
	}
}

// CombineMetadata combines the metadata found on an existing error with that given.
func CombineMetadata(withMetadata HasMetadata, metadata map[string]string) map[string]string {
	clone := maps.Clone(withMetadata.DetailsMetadata())
	if clone == nil {
		clone = map[string]string{}
	}
	maps.Copy(clone, metadata)
	return clone
}
