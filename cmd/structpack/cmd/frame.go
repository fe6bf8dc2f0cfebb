package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/structpack/frame"
	"github.com/arloliu/structpack/schemafile"
)

func newFrameCmd() *cobra.Command {
	var headerOnly bool

	frameCmd := &cobra.Command{
		Use:   "frame <schema.yaml> <file>",
		Short: "Print the header and records of a frame file",
		Long: `Decode a frame file written by "store export" and print its header followed
by one line per record.

Example:
  structpack frame xsdp.yaml sessions.spf`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schemafile.Load(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read frame: %w", err)
			}

			h, err := frame.ReadHeader(data)
			if err != nil {
				return err
			}
			cmd.Printf("id %s, %d records of %d bytes, %s compression, payload %d bytes\n",
				h.ID, h.RecordCount, h.RecordSize, h.Compression, h.PayloadSize)
			if headerOnly {
				return nil
			}

			f, err := frame.Decode(s, data)
			if err != nil {
				return err
			}
			for i, r := range f.All() {
				cmd.Printf("%d\t%s\n", i, r)
			}

			return nil
		},
	}
	frameCmd.Flags().BoolVar(&headerOnly, "header", false, "Print only the frame header")

	return frameCmd
}
