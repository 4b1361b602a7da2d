package scanner

import (
	"regexp"
	"strings"
)

// Release-noise tokens stripped from titles before provider lookups. The
// alternatives are matched only when framed by a separator character, so
// short tokens like "ts" or "dc" cannot eat into real words.
const noiseTokens = `ac3.*|avc|` +
	`bigf|bluray.*|blueray|bd5|brrip|bdrip|` +
	`cam|custom|` +
	`dts|dc|dl|divx|divx5|dsr|dsrip|dutch|dvdrip|dvdscr|dvdscreener|dvdivx|dvd|dd2 0|dxva|` +
	`fragment|frenh|fs|forcebleue|` +
	`german|` +
	`hdtv|hdrip|hdtvrip|hrhd|hrhdtv|hddvd|hd|` +
	`internal|` +
	`klinehd|` +
	`legion|lechti|limited|` +
	`multilang|multisubs|multi|` +
	`nerdhd|nfofix|ntsc|` +
	`ogg|ogm|` +
	`pal|patologik|pdtv|proper|read\.nfo|repack|remux|rerip|retail|rld|r3|r5|` +
	`screener|seth|slimhd|stv|svcd|swedish|ssl|` +
	`tftd|trsiel|` +
	`unrated|` +
	`vostfr|` +
	`wazatt|ws|` +
	`telesync|ts|telecine|tc|` +
	`4khd|480p|480i|576p|576i|720p.*|720i|1080p.*|1080i|` +
	`x264.*|h264|h 264|h 264 .*|264|web|web-dl|xvid|xvidvd|xxx|www.*|cd[1-9]|\[.*\]`

const separatorClass = `[ _,.()\[\]-]`

type substitution struct {
	pattern *regexp.Regexp
	replace string
}

// TitleCleaner applies an ordered list of substitution rules. Order matters:
// generic noise removal runs before year stripping which runs before bracket
// stripping.
type TitleCleaner struct {
	rules []substitution
}

// Clean lowercases the title, applies every rule in order, and trims.
func (c *TitleCleaner) Clean(title string) string {
	title = strings.ToLower(title)
	for _, rule := range c.rules {
		title = rule.pattern.ReplaceAllString(title, rule.replace)
	}
	return strings.TrimSpace(title)
}

func sub(pattern, replace string) substitution {
	return substitution{pattern: regexp.MustCompile(pattern), replace: replace}
}

// NewMovieCleaner builds the cleaner for movie filenames.
func NewMovieCleaner() *TitleCleaner {
	return &TitleCleaner{rules: []substitution{
		sub(`[.\-]`, " "),
		sub(`_`, " "),
		sub(`\s(\d\d\d\d.*)`, ""),
		sub(`[()]`, " "),
		sub(separatorClass+`(`+noiseTokens+`)(`+separatorClass+`|$)`, ""),
		sub(separatorClass+`(`+noiseTokens+`)`, ""),
		sub(`french.*|truefrench.*|www.*|xvid.*|subforced.*|dvdrip.*`, ""),
		sub(`\[.*\]`, ""),
		sub(`[. ]+(19[0-9][0-9]|20[0-1][0-9])`, ""),
	}}
}

// NewTVShowCleaner builds the cleaner for episode filenames. Unlike the
// movie cleaner it keeps hyphens and season/episode tokens intact.
func NewTVShowCleaner() *TitleCleaner {
	return &TitleCleaner{rules: []substitution{
		sub(`\.`, " "),
		sub(`_`, " "),
		sub(separatorClass+`(`+noiseTokens+`)(`+separatorClass+`|$)`, ""),
		sub(separatorClass+`(`+noiseTokens+`)`, ""),
		sub(`french.*|truefrench.*|www.*|xvid.*|subforced.*|dvdrip.*|brrip.*`, ""),
		sub(`\[.*\]`, ""),
		sub(`( 19[0-9][0-9]|20[0-1][0-9] [\w\s]+)`, ""),
	}}
}
