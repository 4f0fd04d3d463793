package flash

// relativeJumpMask selects the top 3 bits that distinguish an AVR rjmp
// (0b1100) or rcall (0b1101) instruction from everything else; both
// share the same top 3 bits, which is exactly what this mask tests.
const relativeJumpMask = 0xE000
const relativeJumpValue = 0xC000

// relativeJumpOffsetMask is the low 12 bits of an rjmp/rcall
// instruction: a signed word-offset, 12-bit two's complement,
// relative to the instruction following it.
const relativeJumpOffsetMask = 0x0FFF

// SelfProgrammer implements flash self-programming behind the
// reset-vector trampoline scheme described in the flash package
// documentation. It is safe to reuse across many write sessions; it
// keeps no session state of its own beyond the erase counter.
type SelfProgrammer struct {
	device   Device
	geometry Geometry

	// EraseCount tallies every EraseBlock call issued through this
	// SelfProgrammer. It wraps silently on overflow; callers that care
	// about wear should sample it periodically rather than compare
	// absolute values across a long-lived session.
	EraseCount byte
}

// NewSelfProgrammer constructs a SelfProgrammer bound to device and
// geometry.
func NewSelfProgrammer(device Device, geometry Geometry) *SelfProgrammer {
	return &SelfProgrammer{device: device, geometry: geometry}
}

// ApplicationSize returns the board's application-region size, as
// reported to the host by GET_HARDWARE_INFO.
func (s *SelfProgrammer) ApplicationSize() uint16 {
	return s.geometry.ApplicationSize
}

// ReadSignatureByte reads a byte from the device's signature-imprint
// table, used by GET_SERIAL_NUMBER.
func (s *SelfProgrammer) ReadSignatureByte(offset byte) byte {
	return s.device.ReadSignatureByte(offset)
}

// ReadByte returns the byte the application sees at addr. For addr 0
// and 1 this is the trampoline's stored instruction offset back to
// what the application's own reset vector would be, decoded as though
// it were sitting at address 0; every other address reads straight
// through to the device.
func (s *SelfProgrammer) ReadByte(addr uint16) byte {
	if addr > 1 {
		return s.device.ReadByte(addr)
	}

	trampoline := uint16(s.device.ReadByte(s.geometry.TrampolineStart)) |
		uint16(s.device.ReadByte(s.geometry.TrampolineStart+1))<<8
	instruction := offsetRelativeJump(trampoline, int32(s.geometry.TrampolineStart))

	if addr == 0 {
		return byte(instruction)
	}
	return byte(instruction >> 8)
}

// ReadFlash fills dst starting at addr, one byte at a time through
// ReadByte, so trampoline virtualisation applies uniformly to bulk
// reads too.
func (s *SelfProgrammer) ReadFlash(addr uint16, dst []byte) {
	for i := range dst {
		dst[i] = s.ReadByte(addr + uint16(i))
	}
}

// WritePage programs one page's worth of data at addr, exactly
// mirroring the device's self-programming firmware: address 0 is
// special-cased to relocate the embedded reset vector into the
// trampoline slot before anything is erased or written, so the
// substitution cannot be observed mid-write.
func (s *SelfProgrammer) WritePage(addr uint16, data []byte) error {
	if len(data) == 0 || len(data) > int(s.geometry.PageSize) || addr%s.geometry.PageSize != 0 {
		return &WriteError{Code: ErrCodeAlignment, Addr: addr}
	}

	if addr == 0 {
		if len(data) < 2 {
			return &WriteError{Code: ErrCodeAlignment, Addr: addr}
		}
		instruction := uint16(data[0]) | uint16(data[1])<<8
		instruction = offsetRelativeJump(instruction, -int32(s.geometry.TrampolineStart))
		if instruction == 0 {
			return &WriteError{Code: ErrCodeUnsupportedOpcode, Addr: addr}
		}
		s.writeTrampoline(instruction)

		// The bytes actually committed at word 0 are always whatever is
		// already there (the bootloader's own jump-to-self), never the
		// application's vector, which has just been relocated above.
		data[0], data[1] = s.device.ReadByte(0), s.device.ReadByte(1)
	}

	if uint32(addr)+uint32(len(data)) > uint32(s.geometry.ApplicationSize) {
		return &WriteError{Code: ErrCodeOutOfRange, Addr: addr}
	}

	if addr%s.geometry.EraseSize == 0 && addr/s.geometry.EraseSize != s.geometry.TrampolineStart/s.geometry.EraseSize {
		s.EraseCount++
		_ = s.device.EraseBlock(addr)
	}

	for i := 0; i < len(data); i += 2 {
		// An odd trailing byte is paired with the erased value 0xff.
		high := byte(0xff)
		if i+1 < len(data) {
			high = data[i+1]
		}
		word := uint16(data[i]) | uint16(high)<<8
		_ = s.device.FillWord(addr+uint16(i), word)
	}
	_ = s.device.WritePage(addr)
	return nil
}

// ErasePage erases the erase-block containing addr. Calling it
// directly on the block holding the reset vector is unusual outside
// of the normal WritePage(0, ...) flow; it's kept safe regardless by
// snapshotting and restoring word 0's bootloader jump around the
// erase, so invariant "word 0 always decodes to a valid jump back
// into the bootloader" holds even for a standalone erase.
func (s *SelfProgrammer) ErasePage(addr uint16) {
	base := addr &^ (s.geometry.EraseSize - 1)
	if uint32(base)+uint32(s.geometry.EraseSize) > uint32(s.geometry.ApplicationSize) {
		return
	}

	if base == 0 {
		word0 := []byte{s.device.ReadByte(0), s.device.ReadByte(1)}
		s.EraseCount++
		_ = s.device.EraseBlock(base)
		_ = s.device.FillWord(0, uint16(word0[0])|uint16(word0[1])<<8)
		_ = s.device.WritePage(0)
		return
	}

	s.EraseCount++
	_ = s.device.EraseBlock(base)
}

// writeTrampoline stores instruction, already re-offset for its new
// home, at the reserved trampoline word.
func (s *SelfProgrammer) writeTrampoline(instruction uint16) {
	addr := s.geometry.TrampolineStart
	s.EraseCount++
	_ = s.device.EraseBlock(addr)
	_ = s.device.FillWord(addr, instruction)
	_ = s.device.WritePage(addr)
}

// offsetRelativeJump re-targets an AVR-style relative jump or call
// instruction by byteOffset bytes (byteOffset/2 words), wrapping the 12-bit offset field
// modulo 4096; this wrap is intentional; it matches how the hardware
// interprets the field. Returns 0 if instruction isn't a relative jump
// or call, signalling "unsupported opcode" to the caller.
func offsetRelativeJump(instruction uint16, byteOffset int32) uint16 {
	if instruction&relativeJumpMask != relativeJumpValue {
		return 0
	}

	offset := int32(instruction&relativeJumpOffsetMask) + byteOffset/2
	offset &= relativeJumpOffsetMask
	return (instruction &^ relativeJumpOffsetMask) | uint16(offset)
}
