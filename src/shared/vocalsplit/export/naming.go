package export

import (
	"path/filepath"
	"strings"
)

const (
	MixedVoices    = "Voices"
	PlayerVoices   = "Voices-Player"
	OpponentVoices = "Voices-Opponent"

	voicesPrefix = "Voices-"
)

// Slug is the song key as used for output folders: lowercased, spaces to hyphens
func Slug(songKey string) string {
	return strings.ToLower(strings.ReplaceAll(songKey, " ", "-"))
}

func SongDir(outputRoot string, songKey string) string {
	return filepath.Join(outputRoot, Slug(songKey))
}

// VoicesFileName names a participant's stem, e.g. Voices-bf.ogg
func VoicesFileName(participant string, ext string) string {
	return voicesPrefix + participant + ext
}

// Stem is a file name without its extension
func Stem(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
