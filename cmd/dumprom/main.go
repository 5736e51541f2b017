// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// main.go - dumprom: extract or list files from a ROM capsule image
// Dual-licensed under MIT and Apache 2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/NaturalTangent/epson-rom-tools/capsule"
)

var (
	errInputUnreadable = errors.New("failed to open input file")
	errWriteFailed     = errors.New("failed to write output file")
)

func main() {
	if err := newDumpromCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newDumpromCmd() *cobra.Command {
	var (
		list    bool
		outDir  string
		lenient bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:          "dumprom <romfile>",
		Short:        "Extract files from an Epson PX-8 ROM capsule image",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDumprom(newLogger(verbose), args[0], outDir, list, lenient)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list the directory instead of extracting")
	cmd.Flags().StringVarP(&outDir, "dir", "d", ".", "directory to extract files into")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "accept images where only one header id byte matches")
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

func runDumprom(log zerolog.Logger, romFile, outDir string, list, lenient bool) error {
	image, err := os.ReadFile(romFile)
	if err != nil {
		return errors.Wrapf(errInputUnreadable, "%s", romFile)
	}
	log.Debug().Str("rom", romFile).Int("bytes", len(image)).Msg("read image")

	opts := capsule.UnpackOptions{LenientHeader: lenient}

	if list {
		info, err := capsule.List(image, opts)
		if err != nil {
			return err
		}
		printInfo(info)
		return nil
	}

	files, err := capsule.Unpack(image, opts)
	if err != nil {
		return err
	}

	for _, f := range files {
		path := filepath.Join(outDir, f.Name)
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			return errors.Wrapf(errWriteFailed, "%s", path)
		}
		log.Debug().Str("file", path).Int("bytes", len(f.Data)).Msg("extracted")
	}

	log.Info().Str("rom", romFile).Int("files", len(files)).Msg("extracted all files")
	return nil
}

func printInfo(info *capsule.Info) {
	fmt.Println("==================================================")
	fmt.Println("             ROM CAPSULE INFORMATION              ")
	fmt.Println("==================================================")
	fmt.Printf("Rom name  : %s\n", info.RomName)
	fmt.Printf("System    : %s\n", info.SystemName)
	fmt.Printf("Format    : %s\n", formatLabel(info.Format))
	fmt.Printf("Capacity  : %s\n", capacityLabel(info.Capacity))
	fmt.Printf("Checksum  : 0x%04X\n", info.Checksum)
	fmt.Printf("Dir slots : %d\n", info.DirEntries)
	fmt.Println("--------------------------------------------------")

	fmt.Printf("%-13s %8s %8s %8s\n", "NAME", "EXTENTS", "BLOCKS", "BYTES")
	for _, f := range info.Files {
		fmt.Printf("%-13s %8d %8d %8d\n", f.Name, f.Extents, f.Blocks, f.Size)
	}
}

func formatLabel(f byte) string {
	switch f {
	case capsule.FormatM:
		return "M (0x37)"
	case capsule.FormatP:
		return "P (0x50)"
	default:
		return fmt.Sprintf("unknown (0x%02X)", f)
	}
}

func capacityLabel(c byte) string {
	switch c {
	case capsule.Capacity64kbit:
		return "64 kbit"
	case capsule.Capacity128kbit:
		return "128 kbit"
	case capsule.Capacity256kbit:
		return "256 kbit (32 KiB)"
	case capsule.Capacity512kbit:
		return "512 kbit"
	case capsule.Capacity1024kbit:
		return "1024 kbit"
	default:
		return fmt.Sprintf("unknown (0x%02X)", c)
	}
}
