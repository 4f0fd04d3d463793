package flash

import (
	"errors"
	"fmt"
)

// ErrOutOfSequence is returned by WriteSession.Write when addr doesn't
// continue the block the session is currently accumulating. Unlike
// WriteError, this isn't a flash-programming failure — it's a
// protocol-level argument error the caller reports independently.
var ErrOutOfSequence = errors.New("flash: write address does not continue the current block")

// Write failure codes, stable across the wire: WRITE_FLASH and
// FINALIZE_FLASH responses carry these as their single reply byte.
const (
	// ErrCodeAlignment covers a zero-length payload, a payload longer
	// than Geometry.PageSize, a payload at address 0 too short to hold
	// the reset vector, or an address that isn't page-aligned.
	ErrCodeAlignment byte = 1

	// ErrCodeUnsupportedOpcode means the two bytes being relocated into
	// the trampoline don't decode as a supported relative jump/call.
	ErrCodeUnsupportedOpcode byte = 2

	// ErrCodeOutOfRange means the write would land at or past
	// Geometry.ApplicationSize.
	ErrCodeOutOfRange byte = 3
)

// WriteError reports why SelfProgrammer.WritePage rejected a page.
type WriteError struct {
	Code byte
	Addr uint16
}

func (e *WriteError) Error() string {
	switch e.Code {
	case ErrCodeAlignment:
		return fmt.Sprintf("flash: page at 0x%04x is misaligned or wrong length", e.Addr)
	case ErrCodeUnsupportedOpcode:
		return fmt.Sprintf("flash: reset vector at 0x%04x is not a relative jump or call", e.Addr)
	case ErrCodeOutOfRange:
		return fmt.Sprintf("flash: page at 0x%04x extends past the application region", e.Addr)
	default:
		return fmt.Sprintf("flash: write to 0x%04x failed with code %d", e.Addr, e.Code)
	}
}
