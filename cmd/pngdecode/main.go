// Command pngdecode decodes a PNG file on disk into a canonical RGBA8
// raster, optionally dumping it back out as a BMP for visual inspection.
package main

import (
	"os"

	pngraster "github.com/adampollak/pngraster"
	"github.com/adampollak/pngraster/internal/pnglog"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
)

var (
	dumpPath string
	strict   bool
)

var rootCmd = &cobra.Command{
	Use:   "pngdecode [file.png]",
	Short: "Decode a PNG file and report its dimensions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		opts := pngraster.Options{Strict: strict}
		img, meta, err := pngraster.DecodeWithMetadata(f, opts)
		if err != nil {
			return err
		}

		pnglog.Logger.Info().
			Int("width", img.Width).
			Int("height", img.Height).
			Int("text_entries", len(meta.TextEntries)).
			Msg("decoded")

		if dumpPath != "" {
			out, err := os.Create(dumpPath)
			if err != nil {
				return err
			}
			defer out.Close()
			return bmp.Encode(out, img)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&dumpPath, "dump", "", "write the decoded raster to this path as a BMP")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "treat ancillary chunk CRC/parse problems as fatal instead of logging and continuing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		pnglog.Logger.Error().Err(err).Msg("decode failed")
		os.Exit(1)
	}
}
