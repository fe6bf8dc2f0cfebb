package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "structpack",
		Short: "structpack - binary structure packing toolkit",
		Long: `structpack packs and unpacks binary data described by struct format
strings such as "<2sh" or "!HHI", and encodes records described by YAML
schema documents.

Examples:
  structpack calcsize '@bhilP'
  structpack pack '<2sh' AB 300
  structpack unpack '!f' 3F800000
  structpack layout xsdp.yaml
  structpack store -d ./data -s xsdp.yaml get session/1`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCalcSizeCmd(),
		newPackCmd(),
		newUnpackCmd(),
		newLayoutCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newStoreCmd(),
		newFrameCmd(),
	)

	return root
}

// Execute runs the CLI with the process arguments. This is called by main.main().
func Execute() {
	root := newRootCmd()
	root.SetOut(os.Stdout)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
