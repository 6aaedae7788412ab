package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mkvtrack/internal/language"
	"mkvtrack/internal/logging"
	"mkvtrack/internal/track"
)

type inspectOptions struct {
	trackID       int
	name          string
	language      string
	isDefault     bool
	forced        bool
	tags          string
	noChapters    bool
	noGlobalTags  bool
	noTrackTags   bool
	noAttachments bool
	json          bool
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Build a track descriptor for FILE and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			code := opts.language
			if !cmd.Flags().Changed("language") {
				code = cfg.Defaults.Language
			}

			runCtx := ctx.runContext(cmd)
			tr, err := track.New(runCtx, args[0],
				track.WithTrackID(opts.trackID),
				track.WithName(opts.name),
				track.WithLanguage(code),
				track.WithDefault(opts.isDefault),
				track.WithForced(opts.forced),
				track.WithMkvmergePath(cfg.MkvmergeBinary()),
				track.WithProbeTimeout(cfg.ProbeTimeout()),
				track.WithLogger(logger),
			)
			if err != nil {
				logging.ErrorWithContext(logger, "track rejected", "inspect_failed",
					logging.String("file", args[0]),
					logging.Error(err),
				)
				return err
			}
			if opts.tags != "" {
				if err := tr.SetTagsPath(opts.tags); err != nil {
					return err
				}
			}
			tr.NoChapters = opts.noChapters
			tr.NoGlobalTags = opts.noGlobalTags
			tr.NoTrackTags = opts.noTrackTags
			tr.NoAttachments = opts.noAttachments

			logger.Info("track described",
				logging.String(logging.FieldEventType, "track_described"),
				logging.String("file", tr.FilePath()),
				logging.Int("track_id", tr.TrackID()),
				logging.String("codec", tr.Codec()),
			)

			if opts.json {
				return writeJSON(cmd, tr)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderFields(inspectFields(tr)))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.trackID, "track", 0, "Track index within FILE")
	cmd.Flags().StringVar(&opts.name, "name", "", "Track name")
	cmd.Flags().StringVar(&opts.language, "language", "", "ISO 639-2 language code")
	cmd.Flags().BoolVar(&opts.isDefault, "default", false, "Mark as default track")
	cmd.Flags().BoolVar(&opts.forced, "forced", false, "Mark as forced track")
	cmd.Flags().StringVar(&opts.tags, "tags", "", "Tags file attached to the track")
	cmd.Flags().BoolVar(&opts.noChapters, "no-chapters", false, "Do not carry chapters from FILE")
	cmd.Flags().BoolVar(&opts.noGlobalTags, "no-global-tags", false, "Do not carry global tags from FILE")
	cmd.Flags().BoolVar(&opts.noTrackTags, "no-track-tags", false, "Do not carry track tags from FILE")
	cmd.Flags().BoolVar(&opts.noAttachments, "no-attachments", false, "Do not carry attachments from FILE")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output as JSON")
	return cmd
}

func inspectFields(tr *track.Track) [][2]string {
	record := tr.Record()
	fields := [][2]string{
		{"File", tr.FilePath()},
		{"Track", fmt.Sprintf("%d of %d", tr.TrackID(), tr.TrackCount())},
		{"Type", tr.TrackType()},
		{"Codec", tr.Codec()},
		{"Name", tr.Name},
		{"Language", languageLabel(tr.Language())},
	}
	if probed := record.Properties.Language; probed != "" {
		fields = append(fields, [2]string{"Probed language", languageLabel(probed)})
	}
	if ietf := record.Properties.LanguageIETF; ietf != "" {
		if canonical, err := language.CanonicalIETF(ietf); err == nil {
			ietf = canonical
		}
		fields = append(fields, [2]string{"Probed IETF tag", ietf})
	}
	fields = append(fields,
		[2]string{"Tags", tr.TagsPath()},
		[2]string{"Default", yesNo(tr.Default)},
		[2]string{"Forced", yesNo(tr.Forced)},
		[2]string{"No chapters", yesNo(tr.NoChapters)},
		[2]string{"No global tags", yesNo(tr.NoGlobalTags)},
		[2]string{"No track tags", yesNo(tr.NoTrackTags)},
		[2]string{"No attachments", yesNo(tr.NoAttachments)},
		[2]string{"mkvmerge", tr.MkvmergePath()},
	)
	return fields
}

func languageLabel(code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf("%s (%s)", language.DisplayName(code), code)
}
