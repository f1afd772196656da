package demo

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sergeyb2024/telemetry/pkg/ingest/csvsource"
	"github.com/sergeyb2024/telemetry/testsupport/tracegen"
)

var outFile string

func NewDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "writes a synthetic lap as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = cmd.OutOrStdout()
			if outFile != "" {
				f, err := os.Create(outFile)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return csvsource.Write(w, tracegen.DemoLap())
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	return cmd
}
