package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/record"
	"github.com/arloliu/structpack/schemafile"
)

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <schema.yaml>",
		Short: "Print the field layout of a schema document",
		Long: `Load a YAML schema document and print the offset, size and type of every
field, including anonymous ones.

Example:
  structpack layout xsdp.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schemafile.Load(args[0])
			if err != nil {
				return err
			}

			cmd.Printf("%s: %s order, %d bytes, fingerprint %016x\n",
				s.Name(), s.Order(), s.Size(), s.Fingerprint())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "OFFSET\tSIZE\tTYPE\tNAME\tFLAGS")
			for _, f := range s.Fields() {
				name := f.Name()
				if name == "" {
					name = "-"
				}
				flags := ""
				if f.ReadOnly() {
					flags = "ro"
				}
				fmt.Fprintf(w, "%d\t%d\t%d%c\t%s\t%s\n", f.Offset(), f.Size(), f.Count(), byte(f.Code()), name, flags)
			}

			return w.Flush()
		},
	}
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <schema.yaml> [name=value...]",
		Short: "Encode a record and print it as hex",
		Long: `Start from the schema defaults, apply name=value assignments and print the
record image as hex. Repeated fields take comma-separated values.

Example:
  structpack encode xsdp.yaml correl_id=42 version=1,0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schemafile.Load(args[0])
			if err != nil {
				return err
			}

			r := s.New()
			if err := assign(r, args[1:]); err != nil {
				return err
			}
			cmd.Println(encodeHex(r.Raw()))

			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <schema.yaml> <hex>",
		Short: "Decode a hex record image and print its fields",
		Long: `Decode a hex encoded record image with a YAML schema document and print
one named field per line. The input must be exactly the schema size.

Example:
  structpack decode xsdp.yaml "58 53 44 50 01 00 ..."`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schemafile.Load(args[0])
			if err != nil {
				return err
			}
			data, err := decodeHex(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if len(data) != s.Size() {
				return fmt.Errorf("%w: schema %q needs %d bytes, got %d", errs.ErrSizeMismatch, s.Name(), s.Size(), len(data))
			}

			printRecord(cmd, s.NewFrom(data))

			return nil
		},
	}
}

func printRecord(cmd *cobra.Command, r *record.Record) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for f, v := range r.All() {
		if f.Name() == "" {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", f.Name(), formatValue(v))
	}
	_ = w.Flush()
}
