package cars

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sergeyb2024/telemetry/pkg/cmd/util"
	"github.com/sergeyb2024/telemetry/pkg/config"
	"github.com/sergeyb2024/telemetry/pkg/setup"
)

func NewCarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cars",
		Short: "lists the cars of the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := setup.LoadCatalogFile(config.CatalogFile)
			if err != nil {
				return err
			}
			cars := catalog.Cars()
			return util.Output(cmd.OutOrStdout(), config.OutputFormat, cars,
				func(w io.Writer) error {
					tw := util.Table(w)
					fmt.Fprintln(tw, "id\tname\tyear\tclass\twheelbase")
					for _, c := range cars {
						fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%.3f\n",
							c.ID, c.Name, c.ModelYear, c.Class, c.Wheelbase)
					}
					return tw.Flush()
				})
		},
	}
	cmd.Flags().StringVar(&config.OutputFormat,
		"format",
		util.FormatText,
		"output format (text, json, yaml)")
	return cmd
}
