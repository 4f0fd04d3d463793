// Package flash implements self-programming of on-chip flash memory
// behind a reset-vector trampoline scheme, and the write-session buffer
// that turns a stream of host-supplied bytes into page-sized commits.
//
// # Trampoline model
//
// The device's hardware reset vector always lives at flash word 0. The
// bootloader keeps word 0 pointing at itself, and relocates whatever
// reset instruction the application actually wants to a single
// reserved word near the end of flash (Geometry.TrampolineStart). This
// means the device is always recoverable: even if power is cut in the
// middle of a flash write, word 0 still contains a valid jump back into
// the bootloader on the next reset. SelfProgrammer.ReadByte virtualises
// this for callers: address 0 and 1 transparently decode the trampoline
// word as though the application's own reset vector were sitting at
// address 0, so a host reading back what it wrote never observes the
// substitution.
//
// # Device contract
//
// Device is the capability SelfProgrammer needs from the board: reading
// a byte, erasing an erase-block, and programming a page. Tests in
// this module use MockDevice, an in-memory implementation
// that records every erase and program call, so the trampoline
// invariants can be exercised without real hardware.
//
// # Write sessions
//
// WriteSession accumulates WRITE_FLASH payloads into an erase-block
// sized buffer and flushes full blocks through SelfProgrammer.WritePage
// as they fill, comparing against existing flash contents first so
// re-uploading identical firmware performs no erase/program cycles at
// all.
package flash
