package mkvmerge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrProbeFailed marks every failure to obtain a usable identification.
var ErrProbeFailed = errors.New("mkvmerge probe failed")

// TrackType is the mkvmerge track type string.
type TrackType string

const (
	TrackTypeVideo     TrackType = "video"
	TrackTypeAudio     TrackType = "audio"
	TrackTypeSubtitles TrackType = "subtitles"
	TrackTypeButtons   TrackType = "buttons"
)

// Identification represents the output of `mkvmerge -J`.
type Identification struct {
	FormatVersion int          `json:"identification_format_version"`
	FileName      string       `json:"file_name"`
	Container     Container    `json:"container"`
	Tracks        []Track      `json:"tracks"`
	Attachments   []Attachment `json:"attachments"`
	Chapters      []EntryCount `json:"chapters"`
	GlobalTags    []EntryCount `json:"global_tags"`
	TrackTags     []TrackTags  `json:"track_tags"`
	Errors        []string     `json:"errors"`
	Warnings      []string     `json:"warnings"`
	raw           []byte
}

// Container describes the recognised container format.
type Container struct {
	Recognized bool   `json:"recognized"`
	Supported  bool   `json:"supported"`
	Type       string `json:"type"`
}

// Track is a single entry of the track inventory.
type Track struct {
	ID         int             `json:"id"`
	Codec      string          `json:"codec"`
	Type       string          `json:"type"`
	Properties TrackProperties `json:"properties"`
}

// TrackProperties holds the subset of per-track properties mkvtrack reads.
type TrackProperties struct {
	Number                 int    `json:"number"`
	CodecID                string `json:"codec_id"`
	Language               string `json:"language"`
	LanguageIETF           string `json:"language_ietf"`
	TrackName              string `json:"track_name"`
	DefaultTrack           bool   `json:"default_track"`
	ForcedTrack            bool   `json:"forced_track"`
	EnabledTrack           bool   `json:"enabled_track"`
	PixelDimensions        string `json:"pixel_dimensions"`
	AudioChannels          int    `json:"audio_channels"`
	AudioSamplingFrequency int    `json:"audio_sampling_frequency"`
}

// Attachment is an attached file stored in the container.
type Attachment struct {
	ID          int    `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// EntryCount reports how many entries a chapter or tag block holds.
type EntryCount struct {
	NumEntries int `json:"num_entries"`
}

// TrackTags reports the tag entries attached to one track.
type TrackTags struct {
	TrackID    int `json:"track_id"`
	NumEntries int `json:"num_entries"`
}

// Parse decodes identification JSON. It fails when the payload is not JSON,
// when mkvmerge reported errors, or when no tracks sequence is present.
func Parse(data []byte) (Identification, error) {
	var info Identification
	if err := json.Unmarshal(data, &info); err != nil {
		return Identification{}, fmt.Errorf("%w: parse identification: %w", ErrProbeFailed, err)
	}
	if len(info.Errors) > 0 {
		return info, fmt.Errorf("%w: mkvmerge error: %s", ErrProbeFailed, strings.Join(info.Errors, "; "))
	}
	if info.Tracks == nil {
		return info, fmt.Errorf("%w: identification has no tracks field", ErrProbeFailed)
	}
	info.raw = append([]byte(nil), data...)
	return info, nil
}

// RawJSON returns the raw identification payload.
func (i Identification) RawJSON() []byte {
	return append([]byte(nil), i.raw...)
}

// TrackCount returns the number of tracks in the inventory.
func (i Identification) TrackCount() int {
	return len(i.Tracks)
}

// Track returns the track at position index of the inventory.
func (i Identification) Track(index int) (Track, bool) {
	if index < 0 || index >= len(i.Tracks) {
		return Track{}, false
	}
	return i.Tracks[index], true
}

// CountByType returns how many tracks have the given type.
func (i Identification) CountByType(kind TrackType) int {
	count := 0
	for _, track := range i.Tracks {
		if strings.EqualFold(track.Type, string(kind)) {
			count++
		}
	}
	return count
}

// Usable reports whether mkvmerge both recognised and supports the container.
func (i Identification) Usable() bool {
	return i.Container.Recognized && i.Container.Supported
}
