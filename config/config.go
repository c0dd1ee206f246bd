package config

import (
	"github.com/namsral/flag"
)

type Config struct {
	StorePath       string
	SnapshotKey     string
	LogLevel        string
	MaxVisibleClues int
	SeedIfEmpty     bool
}

// AddFlags registers the shared flags on a command's flag set. namsral/flag
// also reads each flag from its upper-cased environment variable.
func (c *Config) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.StorePath, "store-path", "cardbox.db", "path to the snapshot database")
	fs.StringVar(&c.SnapshotKey, "snapshot-key", "", "override the storage key (defaults to the standard key)")
	fs.StringVar(&c.LogLevel, "log-level", "info", "log level")
	fs.IntVar(&c.MaxVisibleClues, "max-visible-clues", 3, "clue balloons shown before the expand affordance")
	fs.BoolVar(&c.SeedIfEmpty, "seed-if-empty", true, "seed starter decks when the store is empty")
}

// Load loads the configs from the given arguments.
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("cardbox", flag.ContinueOnError)
	c.AddFlags(fs)
	return fs.Parse(args)
}
