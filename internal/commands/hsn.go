package commands

import (
	"fmt"

	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/infrastructure/reference"
	"github.com/spf13/cobra"
)

func newHSNCommand() *cobra.Command {
	var files []string
	var search bool
	var limit int

	cmd := &cobra.Command{
		Use:   "hsn <code|query>",
		Short: "Look up an HSN/SAC code, or search descriptions with --search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(files) == 0 {
				ref := config.Load().Reference
				files = []string{ref.HSNPath, ref.SACPath}
			}
			codes, err := reference.LoadCodes(files...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if search {
				for _, c := range codes.Search(args[0], limit) {
					fmt.Fprintf(out, "%s\t%s\n", c.Code, c.Description)
				}
				return nil
			}

			desc, ok := codes.Lookup(args[0])
			if !ok {
				return fmt.Errorf("code %s not found", args[0])
			}
			fmt.Fprintln(out, desc)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&files, "file", nil, "code CSV files, HSN_CSV_PATH and SAC_CSV_PATH when omitted")
	cmd.Flags().BoolVar(&search, "search", false, "search by code prefix or description")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum search results")

	return cmd
}
