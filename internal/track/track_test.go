package track

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mkvtrack/internal/language"
	"mkvtrack/internal/mkvmerge"
)

type fakeProber struct {
	files          map[string]mkvmerge.Identification
	identifyErr    error
	supportedErr   error
	supportedCalls int
	identifyCalls  int
}

func newFakeProber() *fakeProber {
	return &fakeProber{files: map[string]mkvmerge.Identification{}}
}

func (f *fakeProber) add(path string, tracks ...mkvmerge.Track) {
	if tracks == nil {
		tracks = []mkvmerge.Track{}
	}
	f.files[path] = mkvmerge.Identification{
		Container: mkvmerge.Container{Recognized: true, Supported: true, Type: "Matroska"},
		Tracks:    tracks,
	}
}

func (f *fakeProber) Supported(_ context.Context, path string) (bool, error) {
	f.supportedCalls++
	if f.supportedErr != nil {
		return false, f.supportedErr
	}
	info, ok := f.files[path]
	return ok && info.Usable(), nil
}

func (f *fakeProber) Identify(_ context.Context, path string) (mkvmerge.Identification, error) {
	f.identifyCalls++
	if f.identifyErr != nil {
		return mkvmerge.Identification{}, f.identifyErr
	}
	info, ok := f.files[path]
	if !ok {
		return mkvmerge.Identification{}, mkvmerge.ErrProbeFailed
	}
	return info, nil
}

func avc() mkvmerge.Track  { return mkvmerge.Track{ID: 0, Codec: "AVC", Type: "video"} }
func aac() mkvmerge.Track  { return mkvmerge.Track{ID: 1, Codec: "AAC", Type: "audio"} }
func srt() mkvmerge.Track  { return mkvmerge.Track{ID: 2, Codec: "SubRip/SRT", Type: "subtitles"} }
func hevc() mkvmerge.Track { return mkvmerge.Track{ID: 0, Codec: "HEVC", Type: "video"} }

func sampleProber() *fakeProber {
	p := newFakeProber()
	p.add("sample.mkv", avc(), aac())
	return p
}

func assertUnchanged(t *testing.T, tr *Track, path string, id int, codec, kind string) {
	t.Helper()
	require.Equal(t, path, tr.FilePath())
	require.Equal(t, id, tr.TrackID())
	require.Equal(t, codec, tr.Codec())
	require.Equal(t, kind, tr.TrackType())
}

func TestSampleScenario(t *testing.T) {
	ctx := context.Background()
	tr, err := New(ctx, "sample.mkv", WithProber(sampleProber()))
	require.NoError(t, err)
	assertUnchanged(t, tr, "sample.mkv", 0, "AVC", "video")
	require.Equal(t, 2, tr.TrackCount())

	require.NoError(t, tr.SetTrackID(ctx, 1))
	assertUnchanged(t, tr, "sample.mkv", 1, "AAC", "audio")

	err = tr.SetTrackID(ctx, 2)
	require.ErrorIs(t, err, ErrTrackIndexOutOfRange)
	assertUnchanged(t, tr, "sample.mkv", 1, "AAC", "audio")
}

func TestNewDefaults(t *testing.T) {
	tr, err := New(context.Background(), "sample.mkv", WithProber(sampleProber()))
	require.NoError(t, err)
	require.Empty(t, tr.Name)
	require.Empty(t, tr.Language())
	require.Empty(t, tr.TagsPath())
	require.False(t, tr.Default)
	require.False(t, tr.Forced)
	require.False(t, tr.NoChapters)
	require.False(t, tr.NoGlobalTags)
	require.False(t, tr.NoTrackTags)
	require.False(t, tr.NoAttachments)
	require.Equal(t, DefaultMkvmergePath, tr.MkvmergePath())
}

func TestNewAppliesOptions(t *testing.T) {
	tr, err := New(context.Background(), "sample.mkv",
		WithProber(sampleProber()),
		WithTrackID(1),
		WithName("Commentary"),
		WithLanguage("eng"),
		WithDefault(true),
		WithForced(true),
		WithMkvmergePath("/opt/bin/mkvmerge"),
	)
	require.NoError(t, err)
	assertUnchanged(t, tr, "sample.mkv", 1, "AAC", "audio")
	require.Equal(t, "Commentary", tr.Name)
	require.Equal(t, "eng", tr.Language())
	require.True(t, tr.Default)
	require.True(t, tr.Forced)
	require.Equal(t, "/opt/bin/mkvmerge", tr.MkvmergePath())
	require.Equal(t, aac(), tr.Record())
}

func TestNewMatchesProbeForEveryTrack(t *testing.T) {
	prober := newFakeProber()
	tracks := []mkvmerge.Track{avc(), aac(), srt()}
	prober.add("multi.mkv", tracks...)

	for i, want := range tracks {
		tr, err := New(context.Background(), "multi.mkv", WithProber(prober), WithTrackID(i))
		require.NoError(t, err)
		require.Equal(t, i, tr.TrackID())
		require.Equal(t, want.Codec, tr.Codec())
		require.Equal(t, want.Type, tr.TrackType())
	}
}

func TestNewRejectsOutOfRangeTrackID(t *testing.T) {
	for _, id := range []int{-5, -1, 2, 3, 100} {
		_, err := New(context.Background(), "sample.mkv", WithProber(sampleProber()), WithTrackID(id))
		require.ErrorIs(t, err, ErrTrackIndexOutOfRange, "id %d", id)
	}
}

func TestNewRejectsUnsupportedFile(t *testing.T) {
	prober := sampleProber()
	prober.files["broken.bin"] = mkvmerge.Identification{
		Container: mkvmerge.Container{Recognized: false},
		Tracks:    []mkvmerge.Track{},
	}

	for _, path := range []string{"missing.mkv", "broken.bin", ""} {
		_, err := New(context.Background(), path, WithProber(prober))
		require.ErrorIs(t, err, ErrUnsupportedFile, "path %q", path)
	}
	require.Zero(t, prober.identifyCalls, "pre-check failure must not trigger a full probe")
}

func TestNewSurfacesProbeFailureAsUnsupported(t *testing.T) {
	prober := sampleProber()
	prober.identifyErr = mkvmerge.ErrProbeFailed
	_, err := New(context.Background(), "sample.mkv", WithProber(prober))
	require.ErrorIs(t, err, ErrUnsupportedFile)
	require.ErrorIs(t, err, mkvmerge.ErrProbeFailed)

	prober = sampleProber()
	prober.supportedErr = errors.New("exec: mkvmerge not found")
	_, err = New(context.Background(), "sample.mkv", WithProber(prober))
	require.ErrorIs(t, err, ErrUnsupportedFile)
	require.Contains(t, err.Error(), "mkvmerge not found")
}

func TestNewRejectsInvalidLanguage(t *testing.T) {
	_, err := New(context.Background(), "sample.mkv", WithProber(sampleProber()), WithLanguage("xyz"))
	require.ErrorIs(t, err, ErrInvalidLanguage)
	require.Contains(t, err.Error(), `"xyz"`)
}

func TestNewExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	prober := newFakeProber()
	prober.add(filepath.Join(home, "movie.mkv"), hevc())

	tr, err := New(context.Background(), "~/movie.mkv", WithProber(prober))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "movie.mkv"), tr.FilePath())
	require.Equal(t, "HEVC", tr.Codec())
}

func TestSetTrackIDProbesEveryTime(t *testing.T) {
	ctx := context.Background()
	prober := sampleProber()
	tr, err := New(ctx, "sample.mkv", WithProber(prober))
	require.NoError(t, err)
	before := prober.identifyCalls

	require.NoError(t, tr.SetTrackID(ctx, 1))
	require.NoError(t, tr.SetTrackID(ctx, 1))
	require.Equal(t, before+2, prober.identifyCalls)
}

func TestSetTrackIDRejectsNegativeWithoutChange(t *testing.T) {
	ctx := context.Background()
	tr, err := New(ctx, "sample.mkv", WithProber(sampleProber()), WithTrackID(1))
	require.NoError(t, err)

	err = tr.SetTrackID(ctx, -1)
	require.ErrorIs(t, err, ErrTrackIndexOutOfRange)
	assertUnchanged(t, tr, "sample.mkv", 1, "AAC", "audio")
}

func TestSetTrackIDProbeFailureLeavesState(t *testing.T) {
	ctx := context.Background()
	prober := sampleProber()
	tr, err := New(ctx, "sample.mkv", WithProber(prober), WithTrackID(1))
	require.NoError(t, err)

	prober.identifyErr = mkvmerge.ErrProbeFailed
	err = tr.SetTrackID(ctx, 0)
	require.ErrorIs(t, err, ErrUnsupportedFile)
	assertUnchanged(t, tr, "sample.mkv", 1, "AAC", "audio")
}

func TestSetFilePathResetsTrackID(t *testing.T) {
	ctx := context.Background()
	prober := sampleProber()
	prober.add("other.mkv", hevc(), aac())
	tr, err := New(ctx, "sample.mkv", WithProber(prober), WithTrackID(1))
	require.NoError(t, err)

	require.NoError(t, tr.SetFilePath(ctx, "other.mkv"))
	assertUnchanged(t, tr, "other.mkv", 0, "HEVC", "video")
}

func TestSetFilePathFailureLeavesState(t *testing.T) {
	ctx := context.Background()
	prober := sampleProber()
	prober.add("empty.mks")
	tr, err := New(ctx, "sample.mkv", WithProber(prober), WithTrackID(1))
	require.NoError(t, err)

	err = tr.SetFilePath(ctx, "missing.mkv")
	require.ErrorIs(t, err, ErrUnsupportedFile)
	assertUnchanged(t, tr, "sample.mkv", 1, "AAC", "audio")

	err = tr.SetFilePath(ctx, "empty.mks")
	require.ErrorIs(t, err, ErrTrackIndexOutOfRange)
	assertUnchanged(t, tr, "sample.mkv", 1, "AAC", "audio")
}

func TestSetLanguage(t *testing.T) {
	tr, err := New(context.Background(), "sample.mkv", WithProber(sampleProber()))
	require.NoError(t, err)

	require.NoError(t, tr.SetLanguage("eng"))
	require.Equal(t, "eng", tr.Language())

	err = tr.SetLanguage("xyz")
	require.ErrorIs(t, err, ErrInvalidLanguage)
	require.Equal(t, "eng", tr.Language())

	require.NoError(t, tr.SetLanguage(""))
	require.Empty(t, tr.Language())
}

func TestSetLanguageAgreesWithValidator(t *testing.T) {
	tr, err := New(context.Background(), "sample.mkv", WithProber(sampleProber()))
	require.NoError(t, err)

	inputs := []string{"eng", "ger", "deu", "jpn", "und", "en", "EN", "Eng", "xyz", "english", " eng", "zzz", "fre", "fra"}
	for _, e := range language.All() {
		inputs = append(inputs, e.Code, strings.ToUpper(e.Code))
	}
	for _, code := range inputs {
		err := tr.SetLanguage(code)
		if language.IsISO639_2(code) {
			require.NoError(t, err, code)
			require.Equal(t, code, tr.Language())
		} else {
			require.ErrorIs(t, err, ErrInvalidLanguage, code)
		}
	}
}

func TestSetTagsPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	present := filepath.Join(home, "present.xml")
	require.NoError(t, os.WriteFile(present, []byte("<Tags/>"), 0o644))

	tr, err := New(context.Background(), "sample.mkv", WithProber(sampleProber()))
	require.NoError(t, err)

	err = tr.SetTagsPath("~/missing.xml")
	require.ErrorIs(t, err, ErrFileNotFound)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Contains(t, err.Error(), filepath.Join(home, "missing.xml"))
	require.Empty(t, tr.TagsPath())

	require.NoError(t, tr.SetTagsPath("~/present.xml"))
	require.Equal(t, present, tr.TagsPath())
	require.True(t, filepath.IsAbs(tr.TagsPath()))

	err = tr.SetTagsPath(home)
	require.ErrorIs(t, err, ErrFileNotFound, "directory is not a regular file")
	require.Equal(t, present, tr.TagsPath())

	err = tr.SetTagsPath("  ")
	require.ErrorIs(t, err, ErrInvalidType)
	require.Equal(t, present, tr.TagsPath())

	tr.ClearTagsPath()
	require.Empty(t, tr.TagsPath())
}

func TestSetTagsPathDoesNotReadContent(t *testing.T) {
	dir := t.TempDir()
	tags := filepath.Join(dir, "tags.xml")
	require.NoError(t, os.WriteFile(tags, []byte("not xml at all"), 0o000))

	tr, err := New(context.Background(), "sample.mkv", WithProber(sampleProber()))
	require.NoError(t, err)
	require.NoError(t, tr.SetTagsPath(tags))
}

func TestSetMkvmergePath(t *testing.T) {
	tr, err := New(context.Background(), "sample.mkv", WithProber(sampleProber()))
	require.NoError(t, err)

	tr.SetMkvmergePath("/usr/local/bin/mkvmerge")
	require.Equal(t, "/usr/local/bin/mkvmerge", tr.MkvmergePath())
	tr.SetMkvmergePath("")
	require.Equal(t, DefaultMkvmergePath, tr.MkvmergePath())
}

func TestValidationErrorDetail(t *testing.T) {
	tr, err := New(context.Background(), "sample.mkv", WithProber(sampleProber()))
	require.NoError(t, err)

	err = tr.SetTrackID(context.Background(), 7)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "track_id", ve.Field)
	require.Equal(t, "7", ve.Value)
	require.Contains(t, err.Error(), "sample.mkv has 2 track(s)")
	require.NotErrorIs(t, err, ErrInvalidLanguage)
	require.NotErrorIs(t, err, fs.ErrNotExist)
}

func TestStringAndJSON(t *testing.T) {
	tr, err := New(context.Background(), "sample.mkv", WithProber(sampleProber()), WithTrackID(1), WithLanguage("eng"))
	require.NoError(t, err)
	tr.Name = "Main"
	tr.NoChapters = true

	s := tr.String()
	require.Contains(t, s, `file_path="sample.mkv"`)
	require.Contains(t, s, `codec="AAC"`)
	require.Contains(t, s, "no_chapters=true")

	data, err := json.Marshal(tr)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "audio", decoded["track_type"])
	require.Equal(t, float64(1), decoded["track_id"])
	require.Equal(t, "Main", decoded["name"])
	require.Equal(t, true, decoded["no_chapters"])
	require.NotContains(t, decoded, "tags_path")
}
