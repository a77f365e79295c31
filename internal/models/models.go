package models

import "github.com/denisAlshanov/tikgrab/internal/utils"

// ExtractionRequest is the body of POST /api/download.
type ExtractionRequest struct {
	URL string `json:"url" binding:"required"`
}

// FormatOption is one user-facing downloadable stream or image.
type FormatOption struct {
	Label   string `json:"label"`
	Quality string `json:"quality"`
	URL     string `json:"url"`
	Ext     string `json:"ext"`
}

// MediaResponse is returned by POST /api/download on success.
type MediaResponse struct {
	Title     *string        `json:"title"`
	Thumbnail *string        `json:"thumbnail"`
	Duration  string         `json:"duration"`
	Formats   []FormatOption `json:"formats"`
}

// RawMediaRecord mirrors the subset of the extractor's JSON dump that is
// read. Nullable extractor fields are pointers.
type RawMediaRecord struct {
	ID             string           `json:"id,omitempty"`
	Title          *string          `json:"title"`
	Thumbnail      *string          `json:"thumbnail"`
	Duration       *float64         `json:"duration"`
	DurationString *string          `json:"duration_string"`
	WebpageURL     string           `json:"webpage_url,omitempty"`
	Formats        []RawFormat      `json:"formats"`
	Images         []RawImage       `json:"images"`
	Entries        []RawMediaRecord `json:"entries"`
}

// HasEntries reports whether the record is a playlist-style wrapper.
func (r *RawMediaRecord) HasEntries() bool {
	return r.Entries != nil
}

type RawFormat struct {
	FormatID string   `json:"format_id"`
	URL      string   `json:"url"`
	Ext      string   `json:"ext"`
	VCodec   *string  `json:"vcodec"`
	ACodec   *string  `json:"acodec"`
	Width    *int     `json:"width"`
	Height   *int     `json:"height"`
	ABR      *float64 `json:"abr"`
	TBR      *float64 `json:"tbr"`
}

// VideoCodec returns the vcodec field, or "" when the extractor left it out.
func (f RawFormat) VideoCodec() string {
	if f.VCodec == nil {
		return ""
	}
	return *f.VCodec
}

func (f RawFormat) AudioCodec() string {
	if f.ACodec == nil {
		return ""
	}
	return *f.ACodec
}

type RawImage struct {
	URL    string `json:"url"`
	Width  *int   `json:"width"`
	Height *int   `json:"height"`
}

// HealthResponse is the static liveness payload.
type HealthResponse struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Message string `json:"message"`
}

type ReadinessResponse struct {
	Ready     bool                      `json:"ready"`
	Timestamp string                    `json:"timestamp"`
	Checks    map[string]ReadinessCheck `json:"checks"`
}

type ReadinessCheck struct {
	Ready        bool   `json:"ready"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

// ErrorResponse is the body of every non-2xx API response. Detail is what
// the web client displays.
type ErrorResponse struct {
	Detail    string          `json:"detail"`
	Error     *utils.AppError `json:"error"`
	RequestID string          `json:"request_id"`
	Timestamp string          `json:"timestamp"`
}
