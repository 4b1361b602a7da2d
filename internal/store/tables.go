package store

// The NMJ device schema. Every table carries five trailing CUSTOM columns
// reserved for forward-compatible extension; newTable appends them so the
// declarations below list only the meaningful columns.

func intCol(name string) Field  { return Field{Name: name, Type: Integer} }
func textCol(name string) Field { return Field{Name: name, Type: Text} }

func newTable(name string, fields ...Field) *Table {
	for _, custom := range []string{"CUSTOM1", "CUSTOM2", "CUSTOM3", "CUSTOM4", "CUSTOM5"} {
		fields = append(fields, textCol(custom))
	}
	return &Table{Name: name, Fields: fields, Defaults: map[string]string{}}
}

var (
	DBVersion = newTable("DB_VERSION",
		intCol("ID"), textCol("VERSION"))
	ScanDirs = newTable("SCAN_DIRS",
		intCol("ID"), textCol("DIRECTORY"), textCol("NAME"), textCol("SCAN_TIME"),
		intCol("SIZE"), intCol("CATEGORY"), textCol("STATUS"), textCol("SEQUENCE"))
	ScanSystem = newTable("SCAN_SYSTEM",
		intCol("ID"), textCol("TYPE"), textCol("VALUE"))
	ContentProviders = newTable("CONTENT_PROVIDERS",
		intCol("ID"), textCol("NAME"), textCol("DESCRIPTION"), textCol("CREATE_TIME"))

	Photos = newTable("PHOTOS",
		intCol("ID"), textCol("TITLE"), textCol("SEARCH_TITLE"), textCol("PATH"),
		intCol("SCAN_DIRS_ID"), textCol("THUMBNAIL"), textCol("PREVIEW"), textCol("FORMAT"),
		textCol("WIDTH"), textCol("HEIGHT"), textCol("CAPTURE_TIME"), textCol("F_NUMBER"),
		textCol("SHUTTLE_SPEED"), textCol("FOCAL_LENGTH"), textCol("ISO_SPEED"), textCol("FLASH"),
		textCol("MODEL"), intCol("SIZE"), textCol("CREATE_TIME"), textCol("UPDATE_STATE"),
		textCol("FILE_STATUS"))
	PhotoAlbums = newTable("PHOTO_ALBUMS",
		intCol("ID"), textCol("TITLE"), textCol("SEARCH_TITLE"), textCol("PATH"),
		intCol("TOTAL_ITEM"), textCol("CREATE_TIME"))
	PhotoAlbumsPhotos = newTable("PHOTO_ALBUMS_PHOTOS",
		intCol("ID"), intCol("PHOTO_ALBUMS_ID"), intCol("PHOTOS_ID"), intCol("SEQUENCE"))
	PhotoDate = newTable("PHOTO_DATE",
		intCol("ID"), textCol("CAPTURE_TIME"), intCol("TOTAL_ITEM"))
	PhotoLastOpen = newTable("PHOTO_LAST_OPEN",
		intCol("ID"), intCol("PHOTOS_ID"), textCol("CREATE_TIME"))

	Songs = newTable("SONGS",
		intCol("ID"), textCol("TITLE"), textCol("SEARCH_TITLE"), textCol("PATH"),
		intCol("SCAN_DIRS_ID"), intCol("FOLDERS_ID"), textCol("RUNTIME"), textCol("FORMAT"),
		textCol("LYRIC"), intCol("RATING"), textCol("HASH"), intCol("SIZE"),
		intCol("PLAY_COUNT"), textCol("BIT_RATE"), intCol("TRACK_POSITION"),
		textCol("RELEASE_DATE"), textCol("CREATE_TIME"), textCol("UPDATE_STATE"),
		textCol("FILE_STATUS"))
	SongAlbums = newTable("SONG_ALBUMS",
		intCol("ID"), textCol("TITLE"), textCol("LANGUAGE"), textCol("SEARCH_TITLE"),
		textCol("TOTAL_ITEM"), textCol("RELEASE_DATE"), textCol("UPDATE_STATE"))
	SongAlbumsSongs = newTable("SONG_ALBUMS_SONGS",
		intCol("ID"), intCol("ALBUMS_ID"), intCol("SONGS_ID"), intCol("SEQUENCE"))
	SongFolders = newTable("SONG_FOLDERS",
		intCol("ID"), textCol("FOLDER"), textCol("TOTAL_ITEM"), textCol("PATH"))
	SongGenresSongs = newTable("SONG_GENRES_SONGS",
		intCol("ID"), intCol("SONGS_ID"), intCol("GENRES_ID"))
	SongGenres = newTable("SONG_GENRES",
		intCol("ID"), textCol("NAME"), textCol("DESCRIPTION"))
	SongGenresSongAlbums = newTable("SONG_GENRES_SONG_ALBUMS",
		intCol("ID"), intCol("ALBUMS_ID"), intCol("GENRES_ID"))
	SongGroupsSongAlbums = newTable("SONG_GROUPS_SONG_ALBUMS",
		intCol("ID"), intCol("GROUPS_ID"), intCol("ALBUMS_ID"))
	SongGroups = newTable("SONG_GROUPS",
		intCol("ID"), textCol("NAME"), textCol("LANGUAGE"))
	SongPls = newTable("SONG_PLS",
		intCol("ID"), textCol("NAME"), textCol("PATH"), textCol("FORMAT"),
		intCol("SCAN_DIRS_ID"), intCol("SIZE"), textCol("TOTAL_ITEM"),
		textCol("CREATE_TIME"), textCol("UPDATE_STATE"))
	SongPlsItem = newTable("SONG_PLS_ITEM",
		intCol("ID"), intCol("PLS_ID"), intCol("SONGS_ID"), intCol("SEQUENCE"))
	SongLastOpen = newTable("SONG_LAST_OPEN",
		intCol("ID"), intCol("SONGS_ID"), textCol("CREATE_TIME"))
	SongPersonsSongs = newTable("SONG_PERSONS_SONGS",
		intCol("ID"), intCol("PERSONS_ID"), intCol("SONGS_ID"), textCol("PERSON_TYPE"))
	SongPersonsSongAlbums = newTable("SONG_PERSONS_SONG_ALBUMS",
		intCol("ID"), intCol("PERSONS_ID"), intCol("ALBUMS_ID"), textCol("PERSON_TYPE"))
	SongPersons = newTable("SONG_PERSONS",
		intCol("ID"), textCol("NAME"), textCol("POSTER"), textCol("THUMBNAIL"), textCol("BIOGRAPHY"))
	SongAlbumPosters = newTable("SONG_ALBUM_POSTERS",
		intCol("ID"), textCol("POSTER"), textCol("POSTER_HASH"), textCol("THUMBNAIL"),
		textCol("THUMBNAIL_HASH"), textCol("TYPE"), textCol("CREATE_TIME"), textCol("MODIFY_TIME"))

	// Shows is the polymorphic catalog entry table: movies, series, seasons
	// and episodes all live here, discriminated by TITLE_TYPE.
	Shows = newTable("SHOWS",
		intCol("ID"), textCol("TITLE"), textCol("SEARCH_TITLE"), textCol("LAST_PLAY_ITEM"),
		intCol("TOTAL_ITEM"), textCol("YEAR"), textCol("RELEASE_DATE"), intCol("POSTERS_ID"),
		intCol("RATING"), textCol("RESOLUTION"), textCol("PARENTAL_CONTROL"), intCol("RUNTIME"),
		textCol("CREATE_TIME"), textCol("TTID"), textCol("UPDATE_STATE"), textCol("TITLE_TYPE"),
		intCol("CONTENT_ID"), intCol("CONTENT_TTID"), intCol("THREE_D"))
	ShowsGenres = newTable("SHOWS_GENRES",
		intCol("ID"), intCol("GENRES_ID"), intCol("SHOWS_ID"))
	ShowsKeywords = newTable("SHOWS_KEYWORDS",
		intCol("ID"), intCol("KEYWORDS_ID"), intCol("SHOWS_ID"))
	ShowsPersons = newTable("SHOWS_PERSONS",
		intCol("ID"), intCol("PERSONS_ID"), intCol("SHOWS_ID"), textCol("PERSON_TYPE"))
	ShowsVideos = newTable("SHOWS_VIDEOS",
		intCol("ID"), intCol("SHOWS_ID"), intCol("VIDEOS_ID"))
	ShowGroups = newTable("SHOW_GROUPS",
		intCol("ID"), textCol("NAME"), textCol("GROUP_TYPE"), textCol("LANGUAGE"))
	ShowGroupsShows = newTable("SHOW_GROUPS_SHOWS",
		intCol("ID"), intCol("GROUPS_ID"), intCol("SHOWS_ID"), textCol("TITLE_TYPE"))

	Videos = newTable("VIDEOS",
		intCol("ID"), textCol("PATH"), textCol("FILE_TYPE"), intCol("SCAN_DIRS_ID"),
		textCol("CREATE_TIME"), textCol("UPDATE_STATE"), textCol("FILE_STATUS"),
		textCol("HASH"), intCol("SIZE"), intCol("THREE_D"), textCol("RESOLUTION"),
		intCol("PLAY_COUNT"))
	VideoBookmarks = newTable("VIDEO_BOOKMARKS",
		intCol("ID"), intCol("VIDEOS_ID"), textCol("TITLE"), textCol("SEARCH_TITLE"),
		intCol("BOOKMARK_TIME"), textCol("THUMBNAIL"), textCol("TYPE"))
	VideoSubtitles = newTable("VIDEO_SUBTITLES",
		intCol("ID"), intCol("VIDEOS_ID"), textCol("FILE_NAME"), textCol("LANGUAGE"),
		intCol("SIZE"), textCol("CREATE_TIME"), textCol("TYPE"))
	VideoGenres = newTable("VIDEO_GENRES",
		intCol("ID"), textCol("NAME"), textCol("DESCRIPTION"))
	VideoPersons = newTable("VIDEO_PERSONS",
		intCol("ID"), textCol("NAME"), textCol("POSTER"), textCol("THUMBNAIL"), textCol("BIOGRAPHY"))
	VideoPosters = newTable("VIDEO_POSTERS",
		intCol("ID"), textCol("POSTER"), textCol("POSTER_HASH"), textCol("THUMBNAIL"),
		textCol("THUMBNAIL_HASH"), textCol("WALLPAPER"), textCol("TYPE"),
		textCol("CREATE_TIME"), textCol("MODIFY_TIME"))
	VideoProperties = newTable("VIDEO_PROPERTIES",
		intCol("ID"), intCol("RUNTIME"), textCol("RESOLUTION"), textCol("WIDTH"),
		textCol("HEIGHT"), textCol("ASPECT_RATIO"), textCol("SYSTEM"),
		textCol("VIDEO_CODEC"), textCol("FPS"))
	Episodes = newTable("EPISODES",
		intCol("ID"), intCol("EPISODE_ID"), intCol("SERIES_ID"), intCol("SEASON_ID"),
		intCol("SEASON"), intCol("EPISODE"))
	Synopsises = newTable("SYNOPSISES",
		intCol("ID"), textCol("SUMMARY"), textCol("TAGLINE"))
	TvLastOpen = newTable("TV_LAST_OPEN",
		intCol("ID"), intCol("VIDEOS_ID"), textCol("CREATE_TIME"))
	MovieLastOpen = newTable("MOVIE_LAST_OPEN",
		intCol("ID"), intCol("VIDEOS_ID"), textCol("CREATE_TIME"))
	Keywords = newTable("KEYWORDS",
		intCol("ID"), textCol("KEYWORD"), textCol("DESCRIPTION"))
	Favourites = newTable("FAVOURITES",
		intCol("ID"), textCol("TYPE"), intCol("MEDIA_ID"))
)

// AllTables lists every table in creation order.
var AllTables = []*Table{
	DBVersion,
	ScanDirs,
	ScanSystem,
	ContentProviders,
	Photos,
	PhotoAlbums,
	PhotoAlbumsPhotos,
	PhotoDate,
	PhotoLastOpen,
	Songs,
	SongAlbums,
	SongAlbumsSongs,
	SongFolders,
	SongGenresSongs,
	SongGenres,
	SongGenresSongAlbums,
	SongGroupsSongAlbums,
	SongGroups,
	SongPls,
	SongPlsItem,
	SongLastOpen,
	SongPersonsSongs,
	SongPersonsSongAlbums,
	SongPersons,
	SongAlbumPosters,
	Shows,
	ShowsGenres,
	ShowsKeywords,
	ShowsPersons,
	ShowsVideos,
	ShowGroups,
	ShowGroupsShows,
	Videos,
	VideoBookmarks,
	VideoSubtitles,
	VideoGenres,
	VideoPersons,
	VideoPosters,
	VideoProperties,
	Episodes,
	Synopsises,
	TvLastOpen,
	MovieLastOpen,
	Keywords,
	Favourites,
}

// indexes are the secondary indexes created alongside the schema.
var indexes = []string{
	"CREATE INDEX IDX_PHOTOS_TITLE ON PHOTOS(TITLE ASC)",
	"CREATE INDEX IDX_PHOTOS_SEARCH_TITLE ON PHOTOS(SEARCH_TITLE ASC)",
	"CREATE INDEX IDX_PHOTO_ALBUMS_PHOTOS_PHOTO_ALBUMS_ID ON PHOTO_ALBUMS_PHOTOS(PHOTO_ALBUMS_ID ASC)",
	"CREATE INDEX IDX_PHOTO_ALBUMS_PHOTOS_PHOTOS_ID ON PHOTO_ALBUMS_PHOTOS(PHOTOS_ID ASC)",
	"CREATE INDEX IDX_PHOTO_DATE_CAPTURE_TIME ON PHOTO_DATE(CAPTURE_TIME ASC)",
	"CREATE INDEX IDX_SHOWS_CONTENT_TTID ON SHOWS(CONTENT_TTID ASC)",
	"CREATE INDEX IDX_SHOWS_TITLE ON SHOWS(TITLE ASC)",
	"CREATE INDEX IDX_SHOWS_SEARCH_TITLE ON SHOWS(SEARCH_TITLE ASC)",
	"CREATE INDEX IDX_SHOWS_YEAR ON SHOWS(YEAR ASC)",
	"CREATE INDEX IDX_SHOWS_RATING ON SHOWS(RATING ASC)",
	"CREATE INDEX IDX_SHOWS_PARENTAL_CONTROL ON SHOWS(PARENTAL_CONTROL ASC)",
	"CREATE INDEX IDX_SONGS_TITLE ON SONGS(TITLE ASC)",
	"CREATE INDEX IDX_SONGS_SEARCH_TITLE ON SONGS(SEARCH_TITLE ASC)",
	"CREATE INDEX IDX_SONGS_RATING ON SONGS(RATING ASC)",
	"CREATE INDEX IDX_SONGS_RELEASE_DATE ON SONGS(RELEASE_DATE ASC)",
	"CREATE INDEX IDX_SONG_ALBUMS_TITLE ON SONG_ALBUMS(TITLE ASC)",
	"CREATE INDEX IDX_SONG_ALBUMS_SEARCH_TITLE ON SONG_ALBUMS(SEARCH_TITLE ASC)",
	"CREATE INDEX IDX_SONG_ALBUMS_RELEASE_DATE ON SONG_ALBUMS(RELEASE_DATE ASC)",
	"CREATE INDEX IDX_SONG_ALBUM_SONGS_ALBUMS_ID ON SONG_ALBUMS_SONGS(ALBUMS_ID ASC)",
	"CREATE INDEX IDX_SONG_ALBUM_SONGS_SONGS_ID ON SONG_ALBUMS_SONGS(SONGS_ID ASC)",
	"CREATE INDEX IDX_SONG_GENRES_SONGS_GENRES_ID ON SONG_GENRES_SONGS(GENRES_ID ASC)",
	"CREATE INDEX IDX_SONG_GENRES_SONGS_SONGS_ID ON SONG_GENRES_SONGS(SONGS_ID ASC)",
	"CREATE INDEX IDX_SONG_GENRES_SONG_ALBUMS_ALBUMS_ID ON SONG_GENRES_SONG_ALBUMS(ALBUMS_ID ASC)",
	"CREATE INDEX IDX_SONG_GENRES_SONG_ALBUMS_GENRES_ID ON SONG_GENRES_SONG_ALBUMS(GENRES_ID ASC)",
	"CREATE INDEX IDX_SONG_GROUPS_SONG_ALBUMS_GROUPS_ID ON SONG_GROUPS_SONG_ALBUMS(GROUPS_ID ASC)",
	"CREATE INDEX IDX_SONG_GROUPS_SONG_ALBUMS_ALBUMS_ID ON SONG_GROUPS_SONG_ALBUMS(ALBUMS_ID ASC)",
	"CREATE INDEX IDX_SONG_PERSONS_SONGS_PERSONS_ID ON SONG_PERSONS_SONGS(PERSONS_ID ASC)",
	"CREATE INDEX IDX_SONG_PERSONS_SONGS_SONGS_ID ON SONG_PERSONS_SONGS(SONGS_ID ASC)",
	"CREATE INDEX IDX_SONG_PERSONS_SONG_ALBUMS_PERSONS_ID ON SONG_PERSONS_SONG_ALBUMS(PERSONS_ID ASC)",
	"CREATE INDEX IDX_SONG_PERSONS_SONG_ALBUMS_ALBUMS_ID ON SONG_PERSONS_SONG_ALBUMS(ALBUMS_ID ASC)",
	"CREATE INDEX IDX_VIDEO_SUBTITLES_VIDEOS_ID ON VIDEO_SUBTITLES(VIDEOS_ID ASC)",
}
