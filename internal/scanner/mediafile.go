package scanner

import (
	"path/filepath"
	"strings"
)

// Kind is the media classification assigned by Accept.
type Kind string

const (
	KindUnknown Kind = "unknown"
	KindMovie   Kind = "movie"
	KindEpisode Kind = "episode"
)

var systemByExtension = map[string]string{
	".avi": "AVI",
	".mkv": "Matroska",
}

// MediaFile is one candidate file found by the directory walk.
type MediaFile struct {
	Path         string
	RelativePath string
	Filename     string
	Title        string
	Extension    string
	Kind         Kind
	System       string
}

// NewMediaFile builds a MediaFile for path. relative is the path recorded in
// the catalog; when empty the full path is used.
func NewMediaFile(path, relative string) *MediaFile {
	if relative == "" {
		relative = path
	}
	filename := filepath.Base(path)
	ext := filepath.Ext(filename)
	return &MediaFile{
		Path:         path,
		RelativePath: relative,
		Filename:     filename,
		Title:        strings.TrimSuffix(filename, ext),
		Extension:    ext,
		Kind:         KindUnknown,
		System:       systemByExtension[strings.ToLower(ext)],
	}
}
