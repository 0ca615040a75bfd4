package mpa

// Error represents a decoder error code.
type Error int

// Error codes. Resynchronisable stream conditions are handled inside
// the frame loop and never surface; these are the conditions that end
// or skip decoding.
const (
	ErrNone           Error = 0
	ErrNilReader      Error = 1
	ErrNoSyncword     Error = 2
	ErrFreeFormat     Error = 3
	ErrBadAllocation  Error = 4
	ErrBadHuffmanData Error = 5
	ErrBadSideInfo    Error = 6
	ErrTruncatedFrame Error = 7
	ErrDecoderClosed  Error = 8
)

var errMessages = [9]string{
	"no error",
	"nil input reader",
	"no frame sync found in input",
	"free format streams are not supported",
	"invalid bit allocation",
	"invalid huffman coded data",
	"malformed side information",
	"truncated frame",
	"decoder is closed",
}

// Error implements the error interface.
func (e Error) Error() string {
	if e >= 0 && int(e) < len(errMessages) {
		return "mpa: " + errMessages[e]
	}
	return "mpa: unknown error"
}
