package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kokiddp/elkcms/internal/meta"
	"github.com/kokiddp/elkcms/internal/models"
	"github.com/spf13/cobra"
)

// ModelsCmd lists the registered content models.
func ModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List registered content models",
		RunE: func(cmd *cobra.Command, args []string) error {
			models.RegisterContentModels()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLABEL\tVISIBILITY\tSUPPORTS")
			for _, name := range meta.Names() {
				model, err := meta.Lookup(name)
				if err != nil {
					return err
				}
				opts, _ := meta.ModelOptions(model)
				visibility := "public"
				if !opts.IsPublic() {
					visibility = "hidden"
				}
				supports := "-"
				if len(opts.Supports) > 0 {
					supports = strings.Join(opts.Supports, ", ")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, opts.Label, visibility, supports)
			}
			return w.Flush()
		},
	}
}
