// Package pnglog is the decoder's ambient structured-logging surface: a
// package-level zerolog.Logger and one narrow helper, Warn, for the one
// thing a decode library actually needs to log — non-fatal ancillary-chunk
// problems (spec §4.12). Grounded on HandmadeNetwork-hmn's
// src/logging/logging.go, trimmed down: no pretty console writer, no
// global log-level wiring from a web app's config, since this is a
// library, not a server.
package pnglog

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-wide logger. Callers embedding this decoder in a
// larger program may reassign it before calling png.Decode to redirect or
// silence diagnostics.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Warn logs a non-fatal problem: a tolerated ancillary CRC mismatch or an
// ancillary chunk that failed to parse. These never abort decoding.
func Warn(chunkType string, err error) {
	Logger.Warn().Str("chunk", chunkType).Err(err).Msg("ignoring ancillary chunk problem")
}
