package media

import (
	"fmt"
	"strconv"

	"github.com/denisAlshanov/tikgrab/internal/models"
)

const (
	codecNone       = "none"
	unknownDuration = "N/A"
	noAudioMarker   = " (No Audio)"
)

// BuildResponse turns an extractor record into the client response. Playlist
// wrappers are reduced to their first entry. The returned formats may be
// empty; callers decide how to treat that.
func BuildResponse(record *models.RawMediaRecord) (*models.MediaResponse, error) {
	if record.HasEntries() {
		if len(record.Entries) == 0 {
			return nil, ErrNoFormatsFound
		}
		record = &record.Entries[0]
	}

	formats := make([]models.FormatOption, 0, len(record.Formats)+1)
	if audio, ok := bestAudio(record.Formats); ok {
		formats = append(formats, audioOption(audio))
	}
	formats = append(formats, videoOptions(record.Formats)...)

	if len(formats) == 0 {
		formats = append(formats, imageOptions(record.Images)...)
	}

	duration := unknownDuration
	if record.DurationString != nil && *record.DurationString != "" {
		duration = *record.DurationString
	}

	return &models.MediaResponse{
		Title:     record.Title,
		Thumbnail: record.Thumbnail,
		Duration:  duration,
		Formats:   formats,
	}, nil
}

// bestAudio picks the audio-only format with the highest average bitrate.
// A missing bitrate counts as zero and the first maximum wins.
func bestAudio(formats []models.RawFormat) (models.RawFormat, bool) {
	var best models.RawFormat
	var bestABR float64
	found := false

	for _, f := range formats {
		if f.URL == "" || f.VideoCodec() != codecNone {
			continue
		}
		abr := bitrate(f)
		if !found || abr > bestABR {
			best, bestABR, found = f, abr, true
		}
	}

	return best, found
}

func audioOption(f models.RawFormat) models.FormatOption {
	kbps := strconv.FormatFloat(bitrate(f), 'f', -1, 64)
	return models.FormatOption{
		Label:   fmt.Sprintf("🎧 MP3 (%sk)", kbps),
		Quality: kbps + " kbps",
		URL:     f.URL,
		Ext:     "mp3",
	}
}

// videoOptions emits one option per video-bearing format that reports a
// height, in extractor order.
func videoOptions(formats []models.RawFormat) []models.FormatOption {
	var options []models.FormatOption
	for _, f := range formats {
		if f.URL == "" || f.VideoCodec() == codecNone {
			continue
		}
		if f.Height == nil || *f.Height <= 0 {
			continue
		}

		label := fmt.Sprintf("🎬 MP4 (%dp)", *f.Height)
		if f.AudioCodec() == codecNone {
			label += noAudioMarker
		}

		options = append(options, models.FormatOption{
			Label:   label,
			Quality: fmt.Sprintf("%dp", *f.Height),
			URL:     f.URL,
			Ext:     "mp4",
		})
	}
	return options
}

// imageOptions covers slideshow posts. Indices are 1-based positions in the
// extractor's image list, so an image without a URL leaves a gap.
func imageOptions(images []models.RawImage) []models.FormatOption {
	var options []models.FormatOption
	for i, img := range images {
		if img.URL == "" {
			continue
		}
		options = append(options, models.FormatOption{
			Label:   fmt.Sprintf("🖼️ Image %d", i+1),
			Quality: fmt.Sprintf("%sx%s", dimension(img.Width), dimension(img.Height)),
			URL:     img.URL,
			Ext:     "jpg",
		})
	}
	return options
}

func bitrate(f models.RawFormat) float64 {
	if f.ABR == nil {
		return 0
	}
	return *f.ABR
}

func dimension(v *int) string {
	if v == nil {
		return "?"
	}
	return strconv.Itoa(*v)
}
