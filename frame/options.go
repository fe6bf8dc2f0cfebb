package frame

import (
	"github.com/segmentio/ksuid"

	"github.com/arloliu/structpack/compress"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/internal/options"
)

// EncoderConfig holds the settings of an Encoder.
type EncoderConfig struct {
	compression format.CompressionType
	id          ksuid.KSUID
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{compression: format.CompressionNone}
}

// EncoderOption represents a functional option for configuring the EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression sets the payload compression. The default is no compression.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if _, err := compress.CreateCodec(comp, "frame"); err != nil {
			return err
		}
		c.compression = comp

		return nil
	})
}

// WithID sets the frame ID instead of generating a new KSUID at Finish.
func WithID(id ksuid.KSUID) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.id = id
	})
}
