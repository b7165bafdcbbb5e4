package cli

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/pipeline"
)

// applyConfig loads the --config file into opts. Flags set on the command
// line win over the file, so their values are put back after decoding.
func (c *CLI) applyConfig(fs *pflag.FlagSet, opts *pipeline.Options) error {
	if c.configPath == "" {
		return nil
	}
	restore := changedFlags(fs)
	if err := loadConfig(c.configPath, opts); err != nil {
		return err
	}
	for _, fn := range restore {
		if err := fn(); err != nil {
			return err
		}
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return nil
}

// loadConfig decodes a TOML or YAML options file over opts. Unknown keys are
// an error.
func loadConfig(path string, opts *pipeline.Options) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, opts)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return errors.Wrap(errors.ErrCodeInvalidOption, err, "config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidOption, "config %s: unknown option %q", path, undecoded[0].String())
		}
		return nil
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "config %s", path)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(opts); err != nil && !stderrors.Is(err, io.EOF) {
			return errors.Wrap(errors.ErrCodeInvalidOption, err, "config %s", path)
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "config must be .toml or .yaml, got %s", path)
}

// changedFlags captures the flags set on the command line as functions that
// set them again.
func changedFlags(fs *pflag.FlagSet) []func() error {
	var restore []func() error
	fs.Visit(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			// GetSlice shares its backing array with the bound option,
			// which the decoder may overwrite in place.
			vals := slices.Clone(sv.GetSlice())
			restore = append(restore, func() error { return sv.Replace(vals) })
			return
		}
		val := f.Value.String()
		restore = append(restore, func() error { return f.Value.Set(val) })
	})
	return restore
}
