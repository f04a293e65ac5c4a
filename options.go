package vtexture

import (
	"log/slog"

	"github.com/gogpu/gputypes"
)

// Option configures a VirtualTexture during creation.
//
// Example:
//
//	vt, err := vtexture.New(cfg,
//	    vtexture.WithLabel("page-cache"),
//	    vtexture.WithTextureFormat(gputypes.TextureFormatBGRA8Unorm),
//	)
type Option func(*options)

// options holds optional configuration for VirtualTexture creation.
type options struct {
	logger *slog.Logger
	format gputypes.TextureFormat
	label  string
}

// defaultOptions returns the default texture options.
func defaultOptions() options {
	return options{
		logger: nil, // resolved to Logger() in New
		format: gputypes.TextureFormatRGBA8Unorm,
		label:  "vtexture",
	}
}

// WithLogger sets the logger for one texture instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTextureFormat sets the format reported by TextureDescriptor.
// TextureFormatUndefined is ignored.
func WithTextureFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		if f != gputypes.TextureFormatUndefined {
			o.format = f
		}
	}
}

// WithLabel sets the debug label reported by TextureDescriptor and attached
// to log records.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}
