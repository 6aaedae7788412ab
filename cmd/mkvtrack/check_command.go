package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mkvtrack/internal/deps"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether the configured mkvmerge is available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries([]deps.Requirement{deps.MkvmergeRequirement(cfg.MkvmergeBinary())})
			statuses = deps.WithVersions(ctx.runContext(cmd), statuses)

			out := cmd.OutOrStdout()
			lines, missing := dependencyLines(statuses, shouldColorize(out))
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			if len(missing) > 0 {
				return errors.New("required dependencies missing: " + strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

// dependencyLines renders one status line per dependency and returns the
// names of required dependencies that are unavailable.
func dependencyLines(statuses []deps.Status, colorize bool) ([]string, []string) {
	lines := make([]string, 0, len(statuses))
	var missing []string
	for _, dep := range statuses {
		if dep.Available {
			message := "Ready"
			switch {
			case dep.Version != "":
				message = fmt.Sprintf("Ready (%s, %s)", dep.Path, dep.Version)
			case dep.Path != "":
				message = fmt.Sprintf("Ready (%s)", dep.Path)
			}
			kind := statusOK
			if dep.Version == "" && dep.Detail != "" {
				kind = statusWarn
				message = fmt.Sprintf("%s; %s", message, dep.Detail)
			}
			lines = append(lines, renderStatusLine(dep.Name, kind, message, colorize))
			continue
		}

		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		} else {
			missing = append(missing, dep.Name)
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
	}
	return lines, missing
}
