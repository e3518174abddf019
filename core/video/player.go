package video

import (
	"net/url"
	"strings"
)

// SourceKind tells the player layer how to mount a playback source.
type SourceKind string

const (
	SourceFile  SourceKind = "file"
	SourceEmbed SourceKind = "embed"
)

// known third-party embed platforms
var embedHosts = map[string]struct{}{
	"youtube.com":      {},
	"www.youtube.com":  {},
	"youtu.be":         {},
	"vimeo.com":        {},
	"www.vimeo.com":    {},
	"player.vimeo.com": {},
}

// ClassifySource decides whether a playback URL points at a third-party
// embed or a direct media file, by hostname match against the known
// platforms. Unparseable sources default to file playback. The catalog
// itself treats VideoURL as opaque.
func ClassifySource(rawURL string) SourceKind {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return SourceFile
	}
	if _, ok := embedHosts[strings.ToLower(u.Hostname())]; ok {
		return SourceEmbed
	}
	return SourceFile
}
