package scanner

import (
	"regexp"
	"strings"
)

var videoExtensions = map[string]struct{}{
	".avi":  {},
	".mpg":  {},
	".mpeg": {},
	".mkv":  {},
	".iso":  {},
	".mp4":  {},
	".vob":  {},
	".ogm":  {},
}

// Episode patterns tried in priority order; the first match wins.
var episodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?P<show_name>.*)\s-\s(?P<episode>\d+).*$`),
	regexp.MustCompile(`(?i)^(?P<show_name>.*)[Ss](?P<season>\d+)[Ee](?P<episode>\d+).*$`),
	regexp.MustCompile(`(?i)^(?P<show_name>.*)[-\s_](?P<season>\d+)[Xx](?P<episode>\d+).*$`),
	regexp.MustCompile(`(?i)^(?P<show_name>.*)[Ss](?P<season>\d+).*$`),
}

// Parsed carries the structured tokens extracted from an episode filename.
// Season and episode keep their textual form ("02", not 2).
type Parsed struct {
	ShowName string
	Season   string
	Episode  string
}

// Classifier assigns a media kind to files and parses episode tokens.
type Classifier struct {
	tvCleaner    *TitleCleaner
	movieCleaner *TitleCleaner
}

// NewClassifier builds a classifier with the default cleaners.
func NewClassifier() *Classifier {
	return &Classifier{
		tvCleaner:    NewTVShowCleaner(),
		movieCleaner: NewMovieCleaner(),
	}
}

// Accept reports whether the file is a recognized media file. On success the
// media kind is tagged on the file: episode when a season/episode pattern
// matches the title, movie otherwise. Episode wins because the movie check
// accepts any title with a known extension.
func (c *Classifier) Accept(media *MediaFile) bool {
	if _, ok := videoExtensions[strings.ToLower(media.Extension)]; !ok {
		return false
	}
	for _, pattern := range episodePatterns {
		if pattern.MatchString(media.Title) {
			media.Kind = KindEpisode
			return true
		}
	}
	media.Kind = KindMovie
	return true
}

// Parse extracts show name and season/episode ordinals from an episode
// title. The title is cleaned first; patterns are tried in order and the
// first match wins. When none match, the whole title is the show name with
// season and episode 1 — the explicit fallback, not an error.
func (c *Classifier) Parse(media *MediaFile) Parsed {
	title := c.tvCleaner.Clean(media.Title)
	for _, pattern := range episodePatterns {
		match := pattern.FindStringSubmatch(title)
		if match == nil {
			continue
		}
		parsed := Parsed{Season: "1", Episode: "1"}
		for i, name := range pattern.SubexpNames() {
			value := strings.TrimSpace(match[i])
			switch name {
			case "show_name":
				parsed.ShowName = value
			case "season":
				parsed.Season = value
			case "episode":
				parsed.Episode = value
			}
		}
		return parsed
	}
	return Parsed{ShowName: media.Title, Season: "1", Episode: "1"}
}

// CleanTitle runs the kind-appropriate cleaner over the file's title.
func (c *Classifier) CleanTitle(media *MediaFile) string {
	if media.Kind == KindEpisode {
		return c.tvCleaner.Clean(media.Title)
	}
	return c.movieCleaner.Clean(media.Title)
}
