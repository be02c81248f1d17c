package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subtrans/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "languages",
		Short:       "List language codes accepted by --target and --source",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			known := language.Known()
			rows := make([][]string, 0, len(known))
			for _, info := range known {
				rows = append(rows, []string{info.Code, info.ISO3, info.Display, info.Native})
			}
			table := renderTable(
				[]string{"Code", "ISO 639-2", "Name", "Native"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				shouldColorize(out),
			)
			fmt.Fprintln(out, table)
			fmt.Fprintln(out, strings.TrimSpace(`
Other BCP 47 tags (for example pt-BR or zh-TW) are accepted as well.
Omit --source to let the translation service detect the language.`))
			return nil
		},
	}
}
