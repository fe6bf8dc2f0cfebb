package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/structpack/codec"
	"github.com/arloliu/structpack/table"
)

func newCalcSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calcsize <format>",
		Short: "Print the packed size of a format string",
		Long: `Print the number of bytes a format string packs to.

Example:
  structpack calcsize '@bhilP'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := codec.CalcSize(args[0])
			if err != nil {
				return err
			}
			cmd.Println(n)

			return nil
		},
	}
}

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <format> [value...]",
		Short: "Pack values and print the bytes as hex",
		Long: `Pack values according to a format string and print the result as hex.

Each value is parsed for the code it fills: integers accept 0x and 0o prefixes,
float codes accept any Go float literal and string codes take the raw argument.

Example:
  structpack pack '<2sh' AB 300`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := codec.Compile(args[0])
			if err != nil {
				return err
			}

			kinds := make([]table.Kind, 0, f.NumValues())
			for _, step := range f.Steps() {
				for range step.Values() {
					kinds = append(kinds, step.Entry.Kind)
				}
			}

			values := make([]any, len(args)-1)
			for i, arg := range args[1:] {
				k := table.KindString
				if i < len(kinds) {
					k = kinds[i]
				}
				if values[i], err = parseValue(k, arg); err != nil {
					return err
				}
			}

			data, err := f.Pack(values...)
			if err != nil {
				return err
			}
			cmd.Println(encodeHex(data))

			return nil
		},
	}
}

func newUnpackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <format> <hex>",
		Short: "Unpack hex bytes and print one value per line",
		Long: `Unpack hex encoded bytes according to a format string. Whitespace between
hex bytes is ignored.

Example:
  structpack unpack '!f' 3F800000`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeHex(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			values, err := codec.Unpack(args[0], data)
			if err != nil {
				return err
			}
			for _, v := range values {
				cmd.Println(formatValue(v))
			}

			return nil
		},
	}
}
