package dataset

import (
	"fmt"

	"github.com/arloliu/lpfit/format"
	"github.com/arloliu/lpfit/internal/options"
)

type config struct {
	encoding    format.EncodingType
	compression format.CompressionType
}

func defaultConfig() *config {
	return &config{
		encoding:    format.TypeGorilla,
		compression: format.CompressionNone,
	}
}

// Option configures Encode and Write.
type Option = options.Option[*config]

// WithEncoding selects the column encoding. The default is format.TypeGorilla.
func WithEncoding(t format.EncodingType) Option {
	return options.New(func(c *config) error {
		if !validEncoding(t) {
			return fmt.Errorf("%w: %s", ErrUnknownEncoding, t)
		}
		c.encoding = t

		return nil
	})
}

// WithCompression selects the payload compression. The default is
// format.CompressionNone.
func WithCompression(t format.CompressionType) Option {
	return options.New(func(c *config) error {
		if !validCompression(t) {
			return fmt.Errorf("%w: %s", ErrUnknownCompression, t)
		}
		c.compression = t

		return nil
	})
}
