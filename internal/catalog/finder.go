package catalog

import (
	"context"

	"nmjcat/internal/store"
)

// Entry is the existing catalog state for one file path: the VIDEOS row, the
// SHOWS_VIDEOS link and the SHOWS row it points at. Any of the three can be
// nil; a nil Show means the file has no catalog entry yet.
type Entry struct {
	Video *store.Record
	Link  *store.Record
	Show  *store.Record
}

// FindEntry walks VIDEOS -> SHOWS_VIDEOS -> SHOWS for a path relative to the
// scan root. Absence at any step stops the walk; it is not an error.
func FindEntry(ctx context.Context, st *store.Store, relativePath string) (*Entry, error) {
	entry := &Entry{}
	video, err := st.First(ctx, store.Videos, store.Query{Eq: store.Values{"path": relativePath}})
	if err != nil || video == nil {
		return entry, err
	}
	entry.Video = video

	link, err := st.First(ctx, store.ShowsVideos, store.Query{Eq: store.Values{"videos_id": video.ID()}})
	if err != nil || link == nil {
		return entry, err
	}
	entry.Link = link

	show, err := st.First(ctx, store.Shows, store.Query{Eq: store.Values{"id": link.Int("shows_id")}})
	if err != nil {
		return entry, err
	}
	entry.Show = show
	return entry, nil
}

// NeedsUpdate reports whether a file still needs a metadata pass: no entry
// at all, an empty synopsis, or an image set with any of the three fields
// unpopulated.
func NeedsUpdate(ctx context.Context, st *store.Store, relativePath string) (bool, error) {
	entry, err := FindEntry(ctx, st, relativePath)
	if err != nil {
		return false, err
	}
	if entry.Show == nil {
		return true, nil
	}
	synopsis, err := st.First(ctx, store.Synopsises, store.Query{Eq: store.Values{"id": entry.Show.ID()}})
	if err != nil {
		return false, err
	}
	if synopsis == nil || synopsis.Text("summary") == "" {
		return true, nil
	}
	poster, err := st.First(ctx, store.VideoPosters, store.Query{Eq: store.Values{"id": entry.Show.ID()}})
	if err != nil {
		return false, err
	}
	if poster == nil || poster.Text("poster") == "" || poster.Text("thumbnail") == "" || poster.Text("wallpaper") == "" {
		return true, nil
	}
	return false, nil
}
