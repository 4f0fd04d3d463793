package flash

// Geometry describes the board-supplied flash layout constants the
// SelfProgrammer needs. PageSize is the minimum programmable unit,
// EraseSize the minimum erasable unit (a multiple of PageSize), and
// ApplicationSize marks the end of the application region, which is
// also where the single-word trampoline slot lives.
type Geometry struct {
	// PageSize is the minimum flash region that can be programmed in
	// one operation.
	PageSize uint16

	// EraseSize is the minimum flash region that can be erased in one
	// operation. Must be a multiple of PageSize.
	EraseSize uint16

	// ApplicationSize is the byte offset one past the last byte of the
	// application region; also the start of the trampoline slot.
	ApplicationSize uint16

	// TrampolineStart is the address of the single word reserved for
	// the relocated application reset vector. Always equal to
	// ApplicationSize.
	TrampolineStart uint16
}

// Device is the capability the SelfProgrammer requires from the board:
// synchronous, blocking flash primitives. Implementations must block
// until the underlying hardware is idle before returning.
type Device interface {
	// ReadByte returns the raw byte stored at the given flash byte
	// address. Unlike SelfProgrammer.ReadByte, this never applies
	// trampoline virtualisation.
	ReadByte(addr uint16) byte

	// EraseBlock erases the erase-block containing addr, setting every
	// byte in it to 0xFF. addr must be EraseSize-aligned.
	EraseBlock(addr uint16) error

	// FillWord stages a 16-bit word into the page-write latches at a
	// 2-byte-aligned address.
	FillWord(addr uint16, word uint16) error

	// WritePage commits the staged latches to flash at a page-aligned
	// address.
	WritePage(addr uint16) error

	// ReadSignatureByte reads a byte from the device signature imprint
	// table (lot/wafer/coordinate data used for GET_SERIAL_NUMBER),
	// independent of the flash address space ReadByte addresses.
	ReadSignatureByte(offset byte) byte

	// ReadEEPROM and WriteEEPROM expose the board's EEPROM, if any.
	// Not driven by any dispatcher command in this protocol version;
	// present so a board implementation has a documented home for
	// them (spec calls this out as future host-facing surface).
	ReadEEPROM(addr uint16, dst []byte)
	WriteEEPROM(addr uint16, data []byte)
}
