package ingest

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// Media is the result of scanning a question cell for an embedded media link.
type Media struct {
	CleanedText string
	URL         string
	Type        domain.MediaType
}

// Found reports whether a media reference was extracted.
func (m Media) Found() bool { return m.URL != "" }

var (
	urlPattern = regexp.MustCompile(`https?://[^\s<>"'\[\]()]+`)

	imageExt = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|webp|svg|bmp)$`)
	audioExt = regexp.MustCompile(`(?i)\.(mp3|wav|ogg|m4a|aac|flac)$`)
)

// Hosts that serve media without a telling file extension.
var (
	imageHosts = []string{"imgur.com", "ibb.co", "drive.google.com", "googleusercontent.com", "postimg.cc"}
	audioHosts = []string{"soundcloud.com", "vocaroo.com", "voca.ro"}
)

// ExtractMedia finds the first image or audio URL in text and removes it,
// together with any brackets wrapping it. Whitespace in the remaining text is
// collapsed. Text without a recognized reference is returned trimmed.
func ExtractMedia(text string) Media {
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		raw := strings.TrimRight(text[start:end], ".,;:!?")
		end = start + len(raw)

		mt, ok := ClassifyMediaURL(raw)
		if !ok {
			continue
		}

		if start > 0 && end < len(text) {
			if closer, wrapped := brackets[text[start-1]]; wrapped && text[end] == closer {
				start--
				end++
			}
		}

		return Media{
			CleanedText: collapseSpaces(text[:start] + " " + text[end:]),
			URL:         raw,
			Type:        mt,
		}
	}

	return Media{CleanedText: strings.TrimSpace(text)}
}

var brackets = map[byte]byte{'(': ')', '[': ']', '<': '>', '{': '}'}

// ClassifyMediaURL decides whether raw points at an image or an audio file,
// first by the path extension, then by well-known hosting domains.
func ClassifyMediaURL(raw string) (domain.MediaType, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", false
	}

	switch {
	case imageExt.MatchString(u.Path):
		return domain.MediaTypeImage, true
	case audioExt.MatchString(u.Path):
		return domain.MediaTypeAudio, true
	}

	host := strings.ToLower(u.Hostname())
	for _, h := range audioHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return domain.MediaTypeAudio, true
		}
	}
	for _, h := range imageHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return domain.MediaTypeImage, true
		}
	}
	return "", false
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
