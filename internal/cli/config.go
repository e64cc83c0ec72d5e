package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/pipeline"
)

// Config is the content of a figtex.toml file:
//
//	[export]
//	format = "pdf"
//	width_command = '\columnwidth'
//	externalize = true
//	tex_extension = "pdf_tex"
//	draw_anchors = false
//	png_scale = 2.0
//
// Command-line flags override file values.
type Config struct {
	Export pipeline.Options `toml:"export"`
}

// loadConfig reads the config at path. With an empty path, figtex.toml in
// the working directory is used if it exists; otherwise the zero Config is
// returned.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		if _, err := os.Stat(configFile); err != nil {
			return cfg, nil
		}
		path = configFile
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(names, ", "))
	}
	return cfg, nil
}
