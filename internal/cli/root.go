package cli

import (
	"github.com/spf13/cobra"
)

// addGlobalFlags registers the flags shared by every subcommand.
func (c *CLI) addGlobalFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "options file (.toml, .yaml); flags take precedence")
	pf.StringVar(&c.cacheURL, "cache-url", "", "cache backend: redis://host:port/db, none (default: local directory)")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable caching")
}
