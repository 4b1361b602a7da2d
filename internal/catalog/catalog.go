// Package catalog materializes provider metadata into the jukebox tables.
// All catalog entries share the SHOWS table, discriminated by TITLE_TYPE;
// movies and episodes both carry the movie title type, so the device lists
// them as playable items.
package catalog

import (
	"context"

	"nmjcat/internal/images"
	"nmjcat/internal/provider"
)

// TITLE_TYPE discriminator values.
const (
	TitleTypeMovie  = "1"
	TitleTypeSeries = "2"
	TitleTypeSeason = "3"
)

// updateStateComplete marks an entry whose metadata has been fully resolved.
const updateStateComplete = "4"

// rootScanDirsID references the single scan-directory row seeded at init.
const rootScanDirsID = 1

// PERSON_TYPE values on the SHOWS_PERSONS junction.
const (
	personTypeCast     = "CAST"
	personTypeDirector = "DIRECTOR"
)

var personTypeByRole = map[string]string{
	provider.RoleActor:    personTypeCast,
	provider.RoleDirector: personTypeDirector,
}

// ImageStore fetches artwork into the media tree and removes it again. A nil
// ImageStore disables downloads, leaving image paths empty.
type ImageStore interface {
	Download(ctx context.Context, url string, kind images.Kind) (string, error)
	Remove(relPath string) error
}
