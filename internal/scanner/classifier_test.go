package scanner

import "testing"

func TestAcceptTagsKind(t *testing.T) {
	cases := []struct {
		path   string
		accept bool
		kind   Kind
	}{
		{"avatar.avi", true, KindMovie},
		{"The.Mentalist.S02E21.FRENCH.LD.HDTV.XviD-JMT.avi", true, KindEpisode},
		{"dexter 2x05.mkv", true, KindEpisode},
		{"notes.txt", false, KindUnknown},
		{"cover.jpg", false, KindUnknown},
		{"movie.MKV", true, KindMovie},
	}

	classifier := NewClassifier()
	for _, tc := range cases {
		media := NewMediaFile(tc.path, "")
		if got := classifier.Accept(media); got != tc.accept {
			t.Errorf("Accept(%q) = %v, want %v", tc.path, got, tc.accept)
			continue
		}
		if media.Kind != tc.kind {
			t.Errorf("Accept(%q) kind = %q, want %q", tc.path, media.Kind, tc.kind)
		}
	}
}

func TestParseEpisode(t *testing.T) {
	classifier := NewClassifier()
	media := NewMediaFile("The.Mentalist.S02E21.FRENCH.LD.HDTV.XviD-JMT.avi", "")

	parsed := classifier.Parse(media)
	if parsed.ShowName != "the mentalist" {
		t.Errorf("show name = %q, want %q", parsed.ShowName, "the mentalist")
	}
	if parsed.Season != "02" {
		t.Errorf("season = %q, want %q", parsed.Season, "02")
	}
	if parsed.Episode != "21" {
		t.Errorf("episode = %q, want %q", parsed.Episode, "21")
	}
}

func TestParseFallsBackToWholeTitle(t *testing.T) {
	classifier := NewClassifier()
	media := NewMediaFile("some show episode.avi", "")

	parsed := classifier.Parse(media)
	if parsed.ShowName != "some show episode" {
		t.Errorf("show name = %q, want the whole title", parsed.ShowName)
	}
	if parsed.Season != "1" || parsed.Episode != "1" {
		t.Errorf("season/episode = %q/%q, want 1/1", parsed.Season, parsed.Episode)
	}
}

func TestMediaFileSystem(t *testing.T) {
	if got := NewMediaFile("film.avi", "").System; got != "AVI" {
		t.Errorf("System = %q, want AVI", got)
	}
	if got := NewMediaFile("film.mkv", "").System; got != "Matroska" {
		t.Errorf("System = %q, want Matroska", got)
	}
	if got := NewMediaFile("film.iso", "").System; got != "" {
		t.Errorf("System = %q, want empty", got)
	}
}
