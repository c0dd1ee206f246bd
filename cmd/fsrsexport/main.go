// Exports a cardbox snapshot store as FSRS cards, for migrating into an
// FSRS-based scheduler. Output is a JSON array on stdout or -out.
package main

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mindcolony/cardbox/config"
	"github.com/mindcolony/cardbox/internal/fsrsexport"
	"github.com/mindcolony/cardbox/internal/stores"
)

func main() {
	cfg := &config.Config{}
	var outPath string
	fs := flag.NewFlagSet("fsrsexport", flag.ContinueOnError)
	cfg.AddFlags(fs)
	fs.StringVar(&outPath, "out", "", "output file (default stdout)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if strings.ToLower(cfg.LogLevel) == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	key := stores.StorageKey
	if cfg.SnapshotKey != "" {
		key = cfg.SnapshotKey
	}
	snaps, err := stores.OpenSnapshotsWithKey(cfg.StorePath, key)
	if err != nil {
		log.Fatal().Err(err).Msg("open-store")
	}
	defer snaps.Close()

	snap, found, err := snaps.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load-snapshot")
	}
	if !found {
		log.Fatal().Str("path", cfg.StorePath).Msg("no snapshot in store")
	}

	entries := fsrsexport.ExportSnapshot(snap, time.Now())
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatal().Err(err).Msg("create-output")
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		log.Fatal().Err(err).Msg("encode-output")
	}
	log.Info().Int("cards", len(entries)).Msg("export-complete")
}
