package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mkvtrack/internal/fileutil"
	"mkvtrack/internal/logging"
	"mkvtrack/internal/mkvmerge"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tracks FILE",
		Short: "List the mkvmerge track inventory of FILE",
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

			path, err := fileutil.ExpandUser(args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}

			client := mkvmerge.New(cfg.MkvmergeBinary(), mkvmerge.WithTimeout(cfg.ProbeTimeout()))
			info, err := client.Identify(ctx.runContext(cmd), path)
			if err != nil {
				return err
			}
			if len(info.Warnings) > 0 {
				logging.WarnWithContext(logger, "mkvmerge reported warnings", "mkvmerge_warning",
					logging.String("file", path),
					logging.String("warnings", strings.Join(info.Warnings, "; ")),
					logging.String(logging.FieldImpact, "inventory may be incomplete"),
				)
			}

			if jsonOutput {
				return writeJSON(cmd, json.RawMessage(info.RawJSON()))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, containerSummary(info))
			if info.TrackCount() == 0 {
				fmt.Fprintln(out, "No tracks found.")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Type", "Codec", "Language", "Name", "Default", "Forced"},
				trackRows(info.Tracks),
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the raw identification JSON")
	return cmd
}

func containerSummary(info mkvmerge.Identification) string {
	kind := info.Container.Type
	if kind == "" {
		kind = "unknown container"
	}
	return fmt.Sprintf("%s: %d tracks (%d video, %d audio, %d subtitles)",
		kind,
		info.TrackCount(),
		info.CountByType(mkvmerge.TrackTypeVideo),
		info.CountByType(mkvmerge.TrackTypeAudio),
		info.CountByType(mkvmerge.TrackTypeSubtitles),
	)
}

func trackRows(tracks []mkvmerge.Track) [][]string {
	rows := make([][]string, 0, len(tracks))
	for _, tr := range tracks {
		lang := tr.Properties.Language
		if tr.Properties.LanguageIETF != "" && tr.Properties.LanguageIETF != lang {
			lang = fmt.Sprintf("%s (%s)", lang, tr.Properties.LanguageIETF)
		}
		rows = append(rows, []string{
			strconv.Itoa(tr.ID),
			tr.Type,
			tr.Codec,
			lang,
			tr.Properties.TrackName,
			yesNo(tr.Properties.DefaultTrack),
			yesNo(tr.Properties.ForcedTrack),
		})
	}
	return rows
}
