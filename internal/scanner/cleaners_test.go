package scanner

import "testing"

func TestMovieCleaner(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"The A Team", "the a team"},
		{"Horrible.Bosses.MULTi.1080p.BluRay.x264-4kHD", "horrible bosses"},
		{"Ice.Age.A.Mammoth.Christmas.FRENCH.720p.WEB-DL.DD2.0.H.264-NeXu14", "ice age a mammoth christmas"},
		{"LA FEE CLOCHETTE L'EXPEDITION FEERIQUE.LiMiTED.French.BRRip.XviD.AC3-TFTD", "la fee clochette l'expedition feerique"},
		{"Les.Aristochats.1970.TRUEFRENCH.1080p.HDTV.x264-BigF", "les aristochats"},
		{"2012", "2012"},
		{"LOL truefrench", "lol"},
		{"Avatar.2011", "avatar"},
		{"Avatar (2011)", "avatar"},
		{"[RipperTeam]_Avatar_2011_DVDRip_TRUEFRENCH", "avatar"},
		{"Thats.My.Boy.2012.FRENCH.BRRiP.XviD.AC3-AUTOPSiE", "thats my boy"},
		{"Quantum.Of.Solace.TRUEFRENCH.SUBFORCED.DVDRip.XviD.AC3-PoneyClub", "quantum of solace"},
	}

	cleaner := NewMovieCleaner()
	for _, tc := range cases {
		if got := cleaner.Clean(tc.raw); got != tc.want {
			t.Errorf("Clean(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestTVShowCleanerKeepsEpisodeTokens(t *testing.T) {
	cleaner := NewTVShowCleaner()
	if got := cleaner.Clean("The.Mentalist.S02E21.FRENCH.LD.HDTV.XviD-JMT"); got != "the mentalist s02e21" {
		t.Fatalf("Clean = %q, want %q", got, "the mentalist s02e21")
	}
}
