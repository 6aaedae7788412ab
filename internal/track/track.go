package track

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"mkvtrack/internal/fileutil"
	"mkvtrack/internal/language"
	"mkvtrack/internal/logging"
	"mkvtrack/internal/mkvmerge"
)

// DefaultMkvmergePath is the mkvmerge binary used when none is configured.
const DefaultMkvmergePath = mkvmerge.DefaultBinary

// Prober is the mkvmerge view of a file. Supported is the cheap pre-check
// run before a path is trusted; Identify returns the full track inventory.
type Prober interface {
	Supported(ctx context.Context, path string) (bool, error)
	Identify(ctx context.Context, path string) (mkvmerge.Identification, error)
}

// Track describes one track to be muxed.
type Track struct {
	// Name is the track name written at mux time.
	Name string

	Default bool
	Forced  bool

	NoChapters    bool
	NoGlobalTags  bool
	NoTrackTags   bool
	NoAttachments bool

	filePath   string
	trackID    int
	trackCount int
	record     mkvmerge.Track
	language   string
	tagsPath   string

	mkvmergePath string
	probeTimeout time.Duration
	prober       Prober
	logger       *slog.Logger
}

type settings struct {
	trackID      int
	name         string
	language     string
	isDefault    bool
	forced       bool
	mkvmergePath string
	probeTimeout time.Duration
	prober       Prober
	logger       *slog.Logger
}

// Option configures a Track at construction.
type Option func(*settings)

// WithTrackID selects a track inside a multi-track file. Defaults to 0.
func WithTrackID(id int) Option {
	return func(s *settings) { s.trackID = id }
}

// WithName sets the track name.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithLanguage sets an ISO 639-2 language code, validated after probing.
func WithLanguage(code string) Option {
	return func(s *settings) { s.language = code }
}

// WithDefault sets the default-track flag.
func WithDefault(v bool) Option {
	return func(s *settings) { s.isDefault = v }
}

// WithForced sets the forced-track flag.
func WithForced(v bool) Option {
	return func(s *settings) { s.forced = v }
}

// WithMkvmergePath overrides the mkvmerge binary for this track.
func WithMkvmergePath(path string) Option {
	return func(s *settings) {
		if strings.TrimSpace(path) != "" {
			s.mkvmergePath = path
		}
	}
}

// WithProbeTimeout bounds each mkvmerge invocation made for this track.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(s *settings) { s.probeTimeout = timeout }
}

// WithProber replaces the mkvmerge client (primarily for tests).
func WithProber(p Prober) Option {
	return func(s *settings) {
		if p != nil {
			s.prober = p
		}
	}
}

// WithLogger routes probe and validation logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// New builds a Track for filePath, which may use "~" notation. The file
// must be reported supported by mkvmerge; its track inventory is then probed
// to populate the codec and type of the selected track, and finally the
// language is validated.
func New(ctx context.Context, filePath string, opts ...Option) (*Track, error) {
	s := settings{mkvmergePath: DefaultMkvmergePath}
	for _, opt := range opts {
		opt(&s)
	}

	t := &Track{
		Name:         s.name,
		Default:      s.isDefault,
		Forced:       s.forced,
		mkvmergePath: s.mkvmergePath,
		probeTimeout: s.probeTimeout,
		prober:       s.prober,
		logger:       logging.NewComponentLogger(s.logger, "track"),
	}

	path, err := t.checkSupported(ctx, filePath)
	if err != nil {
		return nil, err
	}
	t.filePath = path
	if err := t.SetTrackID(ctx, s.trackID); err != nil {
		return nil, err
	}
	if err := t.SetLanguage(s.language); err != nil {
		return nil, err
	}
	return t, nil
}

// FilePath returns the expanded path of the track or container file.
func (t *Track) FilePath() string { return t.filePath }

// TrackID returns the position of the track in the file's inventory.
func (t *Track) TrackID() int { return t.trackID }

// TrackCount returns the inventory size seen by the last successful probe.
func (t *Track) TrackCount() int { return t.trackCount }

// Codec returns the codec reported by mkvmerge, such as "AVC/H.264/MPEG-4p10" or "AAC".
func (t *Track) Codec() string { return t.record.Codec }

// TrackType returns the track type reported by mkvmerge (video, audio, subtitles, ...).
func (t *Track) TrackType() string { return t.record.Type }

// Record returns the full inventory entry of the selected track.
func (t *Track) Record() mkvmerge.Track { return t.record }

// Language returns the ISO 639-2 language code, or "" when unset.
func (t *Track) Language() string { return t.language }

// TagsPath returns the tags file attached at mux time, or "" when unset.
func (t *Track) TagsPath() string { return t.tagsPath }

// MkvmergePath returns the mkvmerge binary used for probing.
func (t *Track) MkvmergePath() string { return t.mkvmergePath }

// SetMkvmergePath changes the binary used by later probes. It does not
// re-probe. An empty path restores DefaultMkvmergePath.
func (t *Track) SetMkvmergePath(path string) {
	if strings.TrimSpace(path) == "" {
		path = DefaultMkvmergePath
	}
	t.mkvmergePath = path
}

// SetFilePath points the track at a new file. The path is expanded and
// checked for support, then probed; on success the track id is reset to 0
// and the codec and type come from the file's first track. On any failure
// the track is left unchanged. A supported file with an empty inventory is
// rejected with ErrTrackIndexOutOfRange.
func (t *Track) SetFilePath(ctx context.Context, filePath string) error {
	path, err := t.checkSupported(ctx, filePath)
	if err != nil {
		return err
	}
	record, count, err := t.resolve(ctx, path, 0)
	if err != nil {
		return err
	}
	t.commit(path, 0, count, record)
	return nil
}

// SetTrackID selects another track of the current file. The file is
// re-probed; ids outside [0, track count) are rejected with
// ErrTrackIndexOutOfRange and the track is left unchanged.
func (t *Track) SetTrackID(ctx context.Context, id int) error {
	if id < 0 {
		return t.rejected(reject(ErrTrackIndexOutOfRange, "track_id", strconv.Itoa(id), "track id must not be negative", nil))
	}
	record, count, err := t.resolve(ctx, t.filePath, id)
	if err != nil {
		return err
	}
	t.commit(t.filePath, id, count, record)
	return nil
}

// SetLanguage sets the ISO 639-2 language code. An empty code clears it.
func (t *Track) SetLanguage(code string) error {
	if code == "" {
		t.language = ""
		return nil
	}
	if !language.IsISO639_2(code) {
		return t.rejected(reject(ErrInvalidLanguage, "language", code, "not an ISO 639-2 language code", nil))
	}
	t.language = code
	return nil
}

// SetTagsPath attaches a tags file. The path may use "~" notation and must
// name an existing regular file at call time; the file is not read. A blank
// path is rejected with ErrInvalidType, use ClearTagsPath to detach.
func (t *Track) SetTagsPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return t.rejected(reject(ErrInvalidType, "tags_path", path, "tags path must be a non-empty file path", nil))
	}
	expanded, err := fileutil.ExpandUser(path)
	if err != nil {
		return t.rejected(reject(ErrFileNotFound, "tags_path", path, "", err))
	}
	if !fileutil.IsRegularFile(expanded) {
		return t.rejected(reject(ErrFileNotFound, "tags_path", expanded, "does not exist or is not a regular file", nil))
	}
	t.tagsPath = expanded
	return nil
}

// ClearTagsPath detaches the tags file.
func (t *Track) ClearTagsPath() {
	t.tagsPath = ""
}

func (t *Track) checkSupported(ctx context.Context, filePath string) (string, error) {
	path, err := fileutil.ExpandUser(filePath)
	if err != nil {
		return "", t.rejected(reject(ErrUnsupportedFile, "file_path", filePath, "", err))
	}
	ok, err := t.client().Supported(ctx, path)
	if err != nil {
		return "", t.rejected(reject(ErrUnsupportedFile, "file_path", path, "", err))
	}
	if !ok {
		return "", t.rejected(reject(ErrUnsupportedFile, "file_path", path, "not a file mkvmerge can read", nil))
	}
	return path, nil
}

// resolve is the single probing point: it identifies path and returns the
// inventory entry at id together with the inventory size.
func (t *Track) resolve(ctx context.Context, path string, id int) (mkvmerge.Track, int, error) {
	started := time.Now()
	info, err := t.client().Identify(ctx, path)
	if err != nil {
		return mkvmerge.Track{}, 0, t.rejected(reject(ErrUnsupportedFile, "file_path", path, "", err))
	}
	record, ok := info.Track(id)
	if !ok {
		detail := fmt.Sprintf("%s has %d track(s)", path, info.TrackCount())
		return mkvmerge.Track{}, 0, t.rejected(reject(ErrTrackIndexOutOfRange, "track_id", strconv.Itoa(id), detail, nil))
	}
	t.logger.Debug("track probed",
		logging.String("file_path", path),
		logging.Int("track_id", id),
		logging.Int("track_count", info.TrackCount()),
		logging.String("codec", record.Codec),
		logging.String("track_type", record.Type),
		logging.Duration("elapsed", time.Since(started)),
	)
	return record, info.TrackCount(), nil
}

func (t *Track) commit(path string, id, count int, record mkvmerge.Track) {
	t.filePath = path
	t.trackID = id
	t.trackCount = count
	t.record = record
}

func (t *Track) client() Prober {
	if t.prober != nil {
		return t.prober
	}
	return mkvmerge.New(t.mkvmergePath, mkvmerge.WithTimeout(t.probeTimeout))
}

func (t *Track) rejected(err error) error {
	if ve, ok := err.(*ValidationError); ok {
		t.logger.Debug("track mutation rejected",
			logging.String(logging.FieldEventType, "track_validation_failed"),
			logging.String("field", ve.Field),
			logging.String("value", ve.Value),
			logging.Error(err),
		)
	}
	return err
}

// String renders the track as a single line of key=value pairs.
func (t *Track) String() string {
	var b strings.Builder
	b.WriteString("track{")
	fmt.Fprintf(&b, "file_path=%q track_id=%d codec=%q type=%q", t.filePath, t.trackID, t.record.Codec, t.record.Type)
	fmt.Fprintf(&b, " name=%q language=%q tags=%q", t.Name, t.language, t.tagsPath)
	fmt.Fprintf(&b, " default=%t forced=%t", t.Default, t.Forced)
	fmt.Fprintf(&b, " no_chapters=%t no_global_tags=%t no_track_tags=%t no_attachments=%t",
		t.NoChapters, t.NoGlobalTags, t.NoTrackTags, t.NoAttachments)
	fmt.Fprintf(&b, " mkvmerge_path=%q}", t.mkvmergePath)
	return b.String()
}

type trackJSON struct {
	FilePath      string `json:"file_path"`
	TrackID       int    `json:"track_id"`
	Codec         string `json:"codec"`
	TrackType     string `json:"track_type"`
	Name          string `json:"name,omitempty"`
	Language      string `json:"language,omitempty"`
	TagsPath      string `json:"tags_path,omitempty"`
	Default       bool   `json:"default"`
	Forced        bool   `json:"forced"`
	NoChapters    bool   `json:"no_chapters"`
	NoGlobalTags  bool   `json:"no_global_tags"`
	NoTrackTags   bool   `json:"no_track_tags"`
	NoAttachments bool   `json:"no_attachments"`
	MkvmergePath  string `json:"mkvmerge_path"`
}

// MarshalJSON encodes the descriptor's fields.
func (t *Track) MarshalJSON() ([]byte, error) {
	return json.Marshal(trackJSON{
		FilePath:      t.filePath,
		TrackID:       t.trackID,
		Codec:         t.record.Codec,
		TrackType:     t.record.Type,
		Name:          t.Name,
		Language:      t.language,
		TagsPath:      t.tagsPath,
		Default:       t.Default,
		Forced:        t.Forced,
		NoChapters:    t.NoChapters,
		NoGlobalTags:  t.NoGlobalTags,
		NoTrackTags:   t.NoTrackTags,
		NoAttachments: t.NoAttachments,
		MkvmergePath:  t.mkvmergePath,
	})
}
