package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

func TestExtractMedia(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Media
	}{
		{
			name: "no media",
			in:   "  Quel est le signe   le plus fréquent ? ",
			want: Media{CleanedText: "Quel est le signe   le plus fréquent ?"},
		},
		{
			name: "image by extension",
			in:   "Interpréter l'ECG https://cdn.example.com/ecg/12.PNG ci-contre",
			want: Media{CleanedText: "Interpréter l'ECG ci-contre", URL: "https://cdn.example.com/ecg/12.PNG", Type: domain.MediaTypeImage},
		},
		{
			name: "bracketed image with trailing period",
			in:   "Voir la radio (https://cdn.example.com/rx.jpeg). Diagnostic ?",
			want: Media{CleanedText: "Voir la radio . Diagnostic ?", URL: "https://cdn.example.com/rx.jpeg", Type: domain.MediaTypeImage},
		},
		{
			name: "audio by extension with query",
			in:   "Auscultation: https://media.example.org/souffle.mp3?dl=1",
			want: Media{CleanedText: "Auscultation:", URL: "https://media.example.org/souffle.mp3?dl=1", Type: domain.MediaTypeAudio},
		},
		{
			name: "image by host",
			in:   "[https://i.imgur.com/abc123] Lésion cutanée",
			want: Media{CleanedText: "Lésion cutanée", URL: "https://i.imgur.com/abc123", Type: domain.MediaTypeImage},
		},
		{
			name: "plain link is not media",
			in:   "Voir https://fr.wikipedia.org/wiki/Asthme pour le rappel",
			want: Media{CleanedText: "Voir https://fr.wikipedia.org/wiki/Asthme pour le rappel"},
		},
		{
			name: "only the first media reference is extracted",
			in:   "https://x.example.com/a.png puis https://x.example.com/b.png",
			want: Media{CleanedText: "puis https://x.example.com/b.png", URL: "https://x.example.com/a.png", Type: domain.MediaTypeImage},
		},
		{
			name: "first non-media link is skipped",
			in:   "https://example.com/page et https://soundcloud.com/x/y",
			want: Media{CleanedText: "https://example.com/page et", URL: "https://soundcloud.com/x/y", Type: domain.MediaTypeAudio},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractMedia(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.URL != "", got.Found())
		})
	}
}

func TestClassifyMediaURL(t *testing.T) {
	t.Parallel()

	mt, ok := ClassifyMediaURL("https://drive.google.com/file/d/xyz/view")
	assert.True(t, ok)
	assert.Equal(t, domain.MediaTypeImage, mt)

	_, ok = ClassifyMediaURL("not a url")
	assert.False(t, ok)

	_, ok = ClassifyMediaURL("https://example.com/notes.pdf")
	assert.False(t, ok)
}
