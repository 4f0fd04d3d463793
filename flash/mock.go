package flash

// MockDevice is an in-memory Device used by tests. It starts fully erased (every flash byte 0xff) and
// records every erase and program call so trampoline and write-session
// behaviour can be asserted without real hardware.
type MockDevice struct {
	Flash     []byte
	Signature []byte
	EEPROM    []byte
	EraseSize uint16

	latches map[uint16]uint16

	EraseCalls []uint16
	WriteCalls []uint16
}

// NewMockDevice returns a MockDevice with flashSize bytes of erased
// flash, erasing eraseSize bytes at a time.
func NewMockDevice(flashSize int, eraseSize uint16) *MockDevice {
	flash := make([]byte, flashSize)
	for i := range flash {
		flash[i] = 0xff
	}
	return &MockDevice{
		Flash:     flash,
		Signature: make([]byte, 0x20),
		EEPROM:    make([]byte, 256),
		EraseSize: eraseSize,
		latches:   make(map[uint16]uint16),
	}
}

func (m *MockDevice) ReadByte(addr uint16) byte {
	return m.Flash[addr]
}

func (m *MockDevice) EraseBlock(addr uint16) error {
	m.EraseCalls = append(m.EraseCalls, addr)
	for i := uint16(0); i < m.EraseSize; i++ {
		m.Flash[addr+i] = 0xff
	}
	return nil
}

func (m *MockDevice) FillWord(addr uint16, word uint16) error {
	m.latches[addr] = word
	return nil
}

func (m *MockDevice) WritePage(addr uint16) error {
	m.WriteCalls = append(m.WriteCalls, addr)
	for a, word := range m.latches {
		m.Flash[a] = byte(word)
		m.Flash[a+1] = byte(word >> 8)
	}
	m.latches = make(map[uint16]uint16)
	return nil
}

func (m *MockDevice) ReadSignatureByte(offset byte) byte {
	return m.Signature[offset]
}

func (m *MockDevice) ReadEEPROM(addr uint16, dst []byte) {
	copy(dst, m.EEPROM[addr:])
}

func (m *MockDevice) WriteEEPROM(addr uint16, data []byte) {
	copy(m.EEPROM[addr:], data)
}
