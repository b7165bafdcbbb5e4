package cli

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/pflag"

	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/pipeline"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func parseFlags(t *testing.T, opts *pipeline.Options, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addPrepareFlags(fs, opts)
	addLayoutFlags(fs, opts)
	addStyleFlags(fs, opts)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

const tomlConfig = `
threshold = 0.3
ordering = "none"
colors = ["red", "#00ff00"]
formats = ["png"]
solid = true
`

const yamlConfig = `
threshold: 0.3
ordering: none
colors: [red, "#00ff00"]
formats: [png]
solid: true
`

func TestApplyConfig(t *testing.T) {
	for _, tc := range []struct{ name, content string }{
		{"opts.toml", tomlConfig},
		{"opts.yaml", yamlConfig},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.configPath = writeConfig(t, tc.name, tc.content)

			opts := pipeline.DefaultOptions()
			fs := parseFlags(t, &opts, "--threshold", "0.4", "--format", "svg,json")
			if err := c.applyConfig(fs, &opts); err != nil {
				t.Fatalf("applyConfig: %v", err)
			}

			if opts.Threshold != 0.4 {
				t.Errorf("Threshold = %v, want the flag value 0.4", opts.Threshold)
			}
			if !slices.Equal(opts.Formats, []string{"svg", "json"}) {
				t.Errorf("Formats = %v, want the flag value [svg json]", opts.Formats)
			}
			if opts.Ordering != "none" || !opts.Solid {
				t.Errorf("file values not applied: ordering=%q solid=%v", opts.Ordering, opts.Solid)
			}
			if !slices.Equal(opts.Colors, []string{"red", "#00ff00"}) {
				t.Errorf("Colors = %v", opts.Colors)
			}
			// untouched by both
			if opts.ChordAlpha != pipeline.DefaultOptions().ChordAlpha {
				t.Errorf("ChordAlpha = %v", opts.ChordAlpha)
			}
		})
	}
}

func TestApplyConfigSliceFlagsSameLength(t *testing.T) {
	for _, tc := range []struct{ name, content string }{
		{"opts.toml", "colors = [\"red\", \"#00ff00\"]\nformats = [\"png\", \"pdf\"]\n"},
		{"opts.yaml", "colors: [red, \"#00ff00\"]\nformats: [png, pdf]\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.configPath = writeConfig(t, tc.name, tc.content)

			opts := pipeline.DefaultOptions()
			fs := parseFlags(t, &opts, "--colors", "blue,black", "--format", "svg,json")
			if err := c.applyConfig(fs, &opts); err != nil {
				t.Fatalf("applyConfig: %v", err)
			}
			if !slices.Equal(opts.Colors, []string{"blue", "black"}) {
				t.Errorf("Colors = %v, want the flag value [blue black]", opts.Colors)
			}
			if !slices.Equal(opts.Formats, []string{"svg", "json"}) {
				t.Errorf("Formats = %v, want the flag value [svg json]", opts.Formats)
			}
		})
	}
}

func TestApplyConfigCenterAndMinDist(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.configPath = writeConfig(t, "opts.toml", "center = [0.5, 0.5]\nmin_dist = 0.0\n")

	opts := pipeline.DefaultOptions()
	fs := parseFlags(t, &opts, "--center", "1,-2")
	if err := c.applyConfig(fs, &opts); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	if opts.Center != [2]float64{1, -2} {
		t.Errorf("Center = %v, want the flag value [1 -2]", opts.Center)
	}
	if opts.MinDist != 0 {
		t.Errorf("MinDist = %v, want 0 from the file", opts.MinDist)
	}

	var p pointValue
	for _, bad := range []string{"1", "a,2", "1,b"} {
		if err := p.Set(bad); err == nil {
			t.Errorf("Set(%q) should fail", bad)
		}
	}
}

func TestApplyConfigNone(t *testing.T) {
	c := New(io.Discard, LogInfo)
	opts := pipeline.DefaultOptions()
	if err := c.applyConfig(parseFlags(t, &opts), &opts); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	if opts.Threshold != pipeline.DefaultOptions().Threshold {
		t.Errorf("Threshold = %v", opts.Threshold)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		want errors.Code
	}{
		{"unknown toml key", writeConfig(t, "a.toml", "threshhold = 0.2\n"), errors.ErrCodeInvalidOption},
		{"bad toml", writeConfig(t, "b.toml", "threshold = \n"), errors.ErrCodeInvalidOption},
		{"unknown yaml key", writeConfig(t, "c.yaml", "threshhold: 0.2\n"), errors.ErrCodeInvalidOption},
		{"wrong yaml type", writeConfig(t, "d.yml", "threshold: high\n"), errors.ErrCodeInvalidOption},
		{"unsupported extension", writeConfig(t, "e.ini", "threshold=0.2\n"), errors.ErrCodeInvalidFormat},
		{"missing toml", filepath.Join(dir, "missing.toml"), errors.ErrCodeFileNotFound},
		{"missing yaml", filepath.Join(dir, "missing.yaml"), errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := pipeline.DefaultOptions()
			err := loadConfig(tt.path, &opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestLoadConfigEmptyYAML(t *testing.T) {
	opts := pipeline.DefaultOptions()
	if err := loadConfig(writeConfig(t, "empty.yaml", ""), &opts); err != nil {
		t.Errorf("empty file: %v", err)
	}
}
