package png

import "github.com/adampollak/pngraster/internal/pngerr"

// Error is the type every decode failure surfaces as. It carries a Kind
// drawn from the taxonomy below plus an optional wrapped cause, in the
// manner of HandmadeNetwork's oops.Error: a message, a wrapped error, and
// nothing else load-bearing (no captured stack trace — a decode library
// has no error-reporting pipeline to feed one to).
type Error = pngerr.Error

// Kind identifies which failure mode an Error represents.
type Kind = pngerr.Kind

const (
	SignatureMismatch      = pngerr.SignatureMismatch
	ShortRead              = pngerr.ShortRead
	CrcMismatch            = pngerr.CrcMismatch
	UnknownCriticalChunk   = pngerr.UnknownCriticalChunk
	BadOrdering            = pngerr.BadOrdering
	InvalidHeader          = pngerr.InvalidHeader
	PayloadUnderrun        = pngerr.PayloadUnderrun
	PayloadOverrun         = pngerr.PayloadOverrun
	DecompressionError     = pngerr.DecompressionError
	InflateSizeMismatch    = pngerr.InflateSizeMismatch
	BadFilterType          = pngerr.BadFilterType
	PaletteIndexOutOfRange = pngerr.PaletteIndexOutOfRange
)

// New and Wrap construct root-package *Error values without callers having
// to import the internal pngerr package directly.
func New(kind Kind, format string, args ...interface{}) *Error {
	return pngerr.New(kind, format, args...)
}

func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return pngerr.Wrap(kind, cause, format, args...)
}
