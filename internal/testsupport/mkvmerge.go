package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// StubVersion is the line the stub prints for --version.
const StubVersion = "mkvmerge v88.0 ('All I Know') 64-bit"

// mkvmergeStub answers `-J <path>` with the contents of <path>.json and exits
// with the status stored in <path>.exit (default 0). Files without a sidecar
// are reported as unrecognized with exit status 2.
const mkvmergeStub = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "` + StubVersion + `"
  exit 0
fi
if [ "$1" != "-J" ]; then
  echo "unexpected arguments: $*" >&2
  exit 2
fi
target="$2"
if [ ! -f "$target.json" ]; then
  printf '{"container":{"recognized":false,"supported":false},"errors":["The type of file could not be recognized."],"tracks":[],"warnings":[]}\n'
  exit 2
fi
cat "$target.json"
code=0
if [ -f "$target.exit" ]; then
  code=$(cat "$target.exit")
fi
exit "$code"
`

// WriteMkvmergeStub writes the stub mkvmerge script into dir and returns its path.
func WriteMkvmergeStub(t testing.TB, dir string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	target := filepath.Join(dir, "mkvmerge")
	if err := os.WriteFile(target, []byte(mkvmergeStub), 0o755); err != nil {
		t.Fatalf("write mkvmerge stub: %v", err)
	}
	return target
}

// StubTrack describes one entry of a generated identification payload.
type StubTrack struct {
	Codec    string
	Type     string
	Language string
	Name     string
	Default  bool
}

// IdentificationJSON renders an mkvmerge -J payload for a recognized Matroska
// container holding tracks in order.
func IdentificationJSON(t testing.TB, tracks ...StubTrack) string {
	t.Helper()

	type properties struct {
		Number       int    `json:"number"`
		Language     string `json:"language,omitempty"`
		TrackName    string `json:"track_name,omitempty"`
		DefaultTrack bool   `json:"default_track"`
	}
	type track struct {
		ID         int        `json:"id"`
		Codec      string     `json:"codec"`
		Type       string     `json:"type"`
		Properties properties `json:"properties"`
	}
	payload := struct {
		Container struct {
			Recognized bool   `json:"recognized"`
			Supported  bool   `json:"supported"`
			Type       string `json:"type"`
		} `json:"container"`
		Errors   []string `json:"errors"`
		Warnings []string `json:"warnings"`
		Tracks   []track  `json:"tracks"`
	}{
		Errors:   []string{},
		Warnings: []string{},
		Tracks:   make([]track, 0, len(tracks)),
	}
	payload.Container.Recognized = true
	payload.Container.Supported = true
	payload.Container.Type = "Matroska"
	for i, tr := range tracks {
		payload.Tracks = append(payload.Tracks, track{
			ID:    i,
			Codec: tr.Codec,
			Type:  tr.Type,
			Properties: properties{
				Number:       i + 1,
				Language:     tr.Language,
				TrackName:    tr.Name,
				DefaultTrack: tr.Default,
			},
		})
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal identification: %v", err)
	}
	return string(data)
}

// SampleTracks is the inventory of the sample.mkv fixture: one AVC video
// track followed by one AAC audio track.
var SampleTracks = []StubTrack{
	{Codec: "AVC/H.264/MPEG-4p10", Type: "video", Language: "und", Default: true},
	{Codec: "AAC", Type: "audio", Language: "eng", Default: true},
}

// WriteMediaFixture creates a media file at path and the identification
// sidecar the stub mkvmerge replies with.
func WriteMediaFixture(t testing.TB, path string, tracks ...StubTrack) {
	t.Helper()

	WriteFile(t, path, 4096)
	if err := os.WriteFile(path+".json", []byte(IdentificationJSON(t, tracks...)), 0o644); err != nil {
		t.Fatalf("write identification sidecar: %v", err)
	}
}

// SetStubExitCode makes the stub exit with code after printing the sidecar for path.
func SetStubExitCode(t testing.TB, path string, code int) {
	t.Helper()

	if err := os.WriteFile(path+".exit", []byte(strconv.Itoa(code)), 0o644); err != nil {
		t.Fatalf("write exit sidecar: %v", err)
	}
}
