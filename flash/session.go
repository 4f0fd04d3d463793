package flash

// WriteSession accumulates successive WRITE_FLASH payloads into an
// erase-block sized buffer, committing full blocks to flash as they
// fill. A single session spans exactly one upload, which begins with a
// write addressed at 0; any write addressed at 0 resets the session.
type WriteSession struct {
	programmer *SelfProgrammer
	geometry   Geometry

	buffer         []byte
	bufferFilled   int
	nextWriteAddr  uint16
	blockStartAddr uint16
	started        bool
}

// NewWriteSession constructs an empty session bound to programmer.
func NewWriteSession(programmer *SelfProgrammer, geometry Geometry) *WriteSession {
	return &WriteSession{
		programmer: programmer,
		geometry:   geometry,
		buffer:     make([]byte, geometry.EraseSize),
	}
}

// Write appends data at addr to the session. addr 0 starts a fresh
// upload, discarding any partially buffered block from a previous one.
// Any other addr must equal NextWriteAddress(); a mismatch indicates
// the host sent blocks out of order and is reported back to the
// caller rather than silently accepted.
func (s *WriteSession) Write(addr uint16, data []byte) error {
	if addr == 0 {
		s.reset()
	} else if addr != s.nextWriteAddr {
		return ErrOutOfSequence
	}

	for _, b := range data {
		s.buffer[s.bufferFilled] = b
		s.bufferFilled++
		s.nextWriteAddr++

		if s.bufferFilled == len(s.buffer) {
			if err := s.commit(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Finalize commits whatever partial block remains buffered. It's the
// counterpart to a FINALIZE_FLASH command, called once after the last
// WRITE_FLASH of an upload, including uploads whose final block never
// reached EraseSize bytes.
func (s *WriteSession) Finalize() error {
	if s.bufferFilled == 0 {
		return nil
	}
	return s.commit()
}

// NextWriteAddress reports the address the session expects the next
// Write call to start at.
func (s *WriteSession) NextWriteAddress() uint16 {
	return s.nextWriteAddr
}

func (s *WriteSession) reset() {
	s.bufferFilled = 0
	s.nextWriteAddr = 0
	s.blockStartAddr = 0
	s.started = true
	for i := range s.buffer {
		s.buffer[i] = 0xff
	}
}

// commit writes the buffered block to flash, unless it already
// matches what's there: re-flashing identical firmware then costs no
// erase/program cycles at all.
func (s *WriteSession) commit() error {
	block := s.buffer[:s.bufferFilled]
	if !s.equalToFlash(s.blockStartAddr, block) {
		pageSize := int(s.geometry.PageSize)
		for offset := 0; offset < len(block); offset += pageSize {
			end := offset + pageSize
			if end > len(block) {
				end = len(block)
			}
			page := make([]byte, end-offset)
			copy(page, block[offset:end])
			if err := s.programmer.WritePage(s.blockStartAddr+uint16(offset), page); err != nil {
				return err
			}
		}
	}

	s.blockStartAddr = s.nextWriteAddr
	s.bufferFilled = 0
	for i := range s.buffer {
		s.buffer[i] = 0xff
	}
	return nil
}

func (s *WriteSession) equalToFlash(addr uint16, data []byte) bool {
	for i, b := range data {
		if s.programmer.ReadByte(addr+uint16(i)) != b {
			return false
		}
	}
	return true
}
