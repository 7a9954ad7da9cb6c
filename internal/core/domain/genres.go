package domain

import "strings"

// seedGenres mirrors the seed-genre vocabulary accepted by the Spotify
// recommendation and search surface. Genres outside this list are dropped
// during normalization.
var seedGenres = map[string]struct{}{}

func init() {
	for _, g := range seedGenreList {
		seedGenres[g] = struct{}{}
	}
}

var seedGenreList = []string{
	"acoustic", "afrobeat", "alt-rock", "alternative", "ambient",
	"bluegrass", "blues", "bossanova", "brazil", "breakbeat", "british",
	"chill", "classical", "club", "country", "dance", "dancehall",
	"death-metal", "deep-house", "disco", "drum-and-bass", "dub", "dubstep",
	"edm", "electro", "electronic", "emo", "folk", "funk", "garage",
	"gospel", "goth", "grindcore", "groove", "grunge", "guitar", "happy",
	"hard-rock", "hardcore", "heavy-metal", "hip-hop", "house", "idm",
	"indie", "indie-pop", "industrial", "jazz", "j-pop", "j-rock", "k-pop",
	"latin", "latino", "lo-fi", "metal", "metalcore", "minimal-techno",
	"new-age", "opera", "party", "piano", "pop", "post-dubstep",
	"power-pop", "progressive-house", "psych-rock", "punk", "punk-rock",
	"r-n-b", "reggae", "reggaeton", "rock", "rock-n-roll", "romance",
	"sad", "salsa", "samba", "singer-songwriter", "ska", "sleep", "soul",
	"soundtracks", "study", "summer", "synth-pop", "tango", "techno",
	"trance", "trip-hop", "work-out", "world-music",
}

// IsSeedGenre reports whether g is part of the fixed seed-genre vocabulary.
// Matching is case-insensitive.
func IsSeedGenre(g string) bool {
	_, ok := seedGenres[strings.ToLower(strings.TrimSpace(g))]
	return ok
}
