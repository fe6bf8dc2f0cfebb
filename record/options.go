package record

import "github.com/arloliu/structpack/internal/options"

// SchemaConfig holds the optional settings of Build.
type SchemaConfig struct {
	name string
}

// SchemaOption represents a functional option for configuring the SchemaConfig.
type SchemaOption = options.Option[*SchemaConfig]

// WithName names the schema. The name is informational and takes part in the
// schema fingerprint.
func WithName(name string) SchemaOption {
	return options.NoError(func(c *SchemaConfig) {
		c.name = name
	})
}
