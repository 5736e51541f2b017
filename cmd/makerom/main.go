// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// main.go - makerom: build a ROM capsule image from CP/M files
// Dual-licensed under MIT and Apache 2.0

package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/NaturalTangent/epson-rom-tools/capsule"
)

var (
	errOutputExists    = errors.New("output file already exists")
	errInputUnreadable = errors.New("failed to open input file")
	errWriteFailed     = errors.New("failed to write output file")
)

func main() {
	if err := newMakeromCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newMakeromCmd() *cobra.Command {
	var (
		romName string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:          "makerom <romfile> <file>...",
		Short:        "Build an Epson PX-8 ROM capsule image",
		Long:         "Build a 256 kbit M-format ROM capsule image holding the given 8.3-named files, in order.",
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMakerom(newLogger(verbose), args[0], args[1:], romName)
		},
	}

	cmd.Flags().StringVar(&romName, "name", "", "ROM name to embed (default: the romfile name)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func runMakerom(log zerolog.Logger, outName string, inputs []string, romName string) error {
	// Refuse to clobber an existing image, before reading anything.
	if _, err := os.Stat(outName); err == nil {
		return errors.Wrapf(errOutputExists, "%s", outName)
	}

	if romName == "" {
		romName = outName
	}

	files := make([]capsule.File, 0, len(inputs))
	for _, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(errInputUnreadable, "%s", path)
		}
		log.Debug().Str("file", path).Int("bytes", len(data)).Msg("read input")
		files = append(files, capsule.File{Name: filepath.Base(path), Data: data})
	}

	image, err := capsule.Pack(romName, files)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outName, image, 0644); err != nil {
		return errors.Wrapf(errWriteFailed, "%s", outName)
	}

	log.Info().Str("rom", outName).Int("files", len(files)).Msg("wrote ROM image")
	return nil
}
