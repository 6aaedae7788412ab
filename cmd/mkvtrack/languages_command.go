package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mkvtrack/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "languages [QUERY]",
		Short:       "List ISO 639-2 language codes accepted for --language",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = strings.TrimSpace(args[0])
			}
			entries := filterLanguages(language.All(), query)
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No languages match %q.\n", query)
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Code, e.Terminology, e.Alpha2, e.Name})
			}
			fmt.Fprintln(out, renderTable([]string{"Code", "Terminology", "ISO 639-1", "Name"}, rows, nil))
			return nil
		},
	}
}

// filterLanguages matches query against codes and names by substring. A
// query that matches nothing is retried as an IETF tag such as "pt-BR".
func filterLanguages(entries []language.Entry, query string) []language.Entry {
	if query == "" {
		return entries
	}
	needle := strings.ToLower(query)
	var matched []language.Entry
	for _, e := range entries {
		if e.Code == needle || e.Terminology == needle || e.Alpha2 == needle ||
			strings.Contains(strings.ToLower(e.Name), needle) {
			matched = append(matched, e)
		}
	}
	if len(matched) > 0 {
		return matched
	}
	code, err := language.FromIETF(query)
	if err != nil {
		return nil
	}
	if entry, ok := language.Lookup(code); ok {
		return []language.Entry{entry}
	}
	return nil
}
