package domain

// PlaylistDetail is a playlist with its owner and songs in position order.
type PlaylistDetail struct {
	Playlist
	Owner User            `json:"owner"`
	Songs []PlaylistEntry `json:"songs"`
}

// SongDetail is a song with its artists and, when set, its album.
type SongDetail struct {
	Song
	Artists []Artist `json:"artists"`
	Album   *Album   `json:"album,omitempty"`
}

// ArtistDetail is an artist with the songs and albums credited to them.
type ArtistDetail struct {
	Artist
	Songs  []Song  `json:"songs"`
	Albums []Album `json:"albums"`
}

// AlbumDetail is an album with its credited artists and track list.
type AlbumDetail struct {
	Album
	Artists []Artist `json:"artists"`
	Songs   []Song   `json:"songs"`
}

// UserDetail is a user with the playlists they own.
type UserDetail struct {
	User
	Playlists []Playlist `json:"playlists"`
}
