package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/frame"
	"github.com/arloliu/structpack/record"
	"github.com/arloliu/structpack/schemafile"
	"github.com/arloliu/structpack/store"
)

type storeFlags struct {
	dataDir    string
	schemaPath string
	sync       bool
}

func (f *storeFlags) open() (*store.Store, error) {
	if f.schemaPath == "" {
		return nil, fmt.Errorf("--schema is required")
	}
	s, err := schemafile.Load(f.schemaPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(f.dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return store.Open(f.dataDir, s, store.WithSync(f.sync))
}

// run opens the store for the duration of fn.
func (f *storeFlags) run(fn func(st *store.Store) error) error {
	st, err := f.open()
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(st)
}

func newStoreCmd() *cobra.Command {
	flags := &storeFlags{}

	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Keep records in a persistent keyed store",
		Long: `Put, get, delete and scan records of one schema in a pebble database.

Examples:
  structpack store -d ./data -s xsdp.yaml put session/1 correl_id=42
  structpack store -d ./data -s xsdp.yaml get session/1
  structpack store -d ./data -s xsdp.yaml export session/ -o sessions.spf -c zstd`,
	}
	storeCmd.PersistentFlags().StringVarP(&flags.dataDir, "data-dir", "d", "./data", "Data directory for the store")
	storeCmd.PersistentFlags().StringVarP(&flags.schemaPath, "schema", "s", "", "YAML schema document of the stored records")
	storeCmd.PersistentFlags().BoolVar(&flags.sync, "sync", false, "Sync every write to stable storage")

	storeCmd.AddCommand(
		&cobra.Command{
			Use:   "put <key> [name=value...]",
			Short: "Store a record built from the schema defaults and assignments",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return flags.run(func(st *store.Store) error {
					r := st.Schema().New()
					if err := assign(r, args[1:]); err != nil {
						return err
					}
					if err := st.Put([]byte(args[0]), r); err != nil {
						return err
					}
					cmd.Printf("Stored %s\n", args[0])

					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print the fields of a stored record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return flags.run(func(st *store.Store) error {
					r, err := st.Get([]byte(args[0]))
					if err != nil {
						return err
					}
					printRecord(cmd, r)

					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <key>",
			Short: "Delete a stored record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return flags.run(func(st *store.Store) error {
					if err := st.Delete([]byte(args[0])); err != nil {
						return err
					}
					cmd.Printf("Deleted %s\n", args[0])

					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "scan [prefix]",
			Short: "Print every stored record under a key prefix",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var prefix []byte
				if len(args) == 1 {
					prefix = []byte(args[0])
				}

				return flags.run(func(st *store.Store) error {
					return st.Scan(prefix, func(key []byte, r *record.Record) error {
						cmd.Printf("%s\t%s\n", key, r)

						return nil
					})
				})
			},
		},
		newExportCmd(flags),
	)

	return storeCmd
}

func newExportCmd(flags *storeFlags) *cobra.Command {
	var (
		output      string
		compression string
	)

	exportCmd := &cobra.Command{
		Use:   "export [prefix]",
		Short: "Write the records under a key prefix to a frame file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, ok := format.ParseCompression(compression)
			if !ok {
				return fmt.Errorf("unknown compression %q", compression)
			}
			var prefix []byte
			if len(args) == 1 {
				prefix = []byte(args[0])
			}

			return flags.run(func(st *store.Store) error {
				enc, err := frame.NewEncoder(st.Schema(), frame.WithCompression(comp))
				if err != nil {
					return err
				}
				err = st.Scan(prefix, func(_ []byte, r *record.Record) error {
					return enc.Append(r)
				})
				if err != nil {
					return err
				}
				n := enc.Len()
				data, err := enc.Finish()
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil { //nolint:gosec
					return fmt.Errorf("failed to write frame: %w", err)
				}
				cmd.Printf("Exported %d records to %s (%d bytes)\n", n, output, len(data))

				return nil
			})
		},
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "records.spf", "Frame file to write")
	exportCmd.Flags().StringVarP(&compression, "compression", "c", "none", "Payload compression: none, zstd, s2 or lz4")

	return exportCmd
}
