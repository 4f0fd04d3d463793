package protocol

// Opcode identifies a command carried in the first payload byte of a
// framed transfer.
type Opcode byte

const (
	GetProtocolVersion Opcode = 0x00
	SetI2CAddress      Opcode = 0x01
	PowerUpDisplay     Opcode = 0x02
	GetHardwareInfo    Opcode = 0x03
	GetSerialNumber    Opcode = 0x04
	StartApplication   Opcode = 0x05
	WriteFlash         Opcode = 0x06
	FinalizeFlash      Opcode = 0x07
	ReadFlash          Opcode = 0x08
)

// ProtocolVersionMajor and ProtocolVersionMinor are the two bytes
// GET_PROTOCOL_VERSION replies with.
const (
	ProtocolVersionMajor = 1
	ProtocolVersionMinor = 0
)

// SerialNumberOffsets lists the device signature-imprint offsets
// GET_SERIAL_NUMBER reads, in reply order. Note the gap at 0x14: the
// vendor's imprint table skips it.
var SerialNumberOffsets = [9]byte{0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13, 0x15, 0x16, 0x17}

// GeneralCall is the payload opcode carried in a broadcast (address 0)
// transfer. These have implementer-chosen stable values; the two
// defined here match this core's own framers and dispatcher.
type GeneralCall byte

const (
	// Reset asks every device on the bus to perform a hardware reset
	// immediately; fatal/unrecoverable from the framer's perspective.
	Reset GeneralCall = 0x00

	// ResetAddress asks the bus driver to return to its initial
	// address/mask configuration.
	ResetAddress GeneralCall = 0x01
)

// BoardInfo carries the board-specific constants the dispatcher needs
// for GET_HARDWARE_INFO, SET_I2C_ADDRESS wildcard matching, and the
// initial bus configuration the bootloader loop applies at startup.
type BoardInfo struct {
	HWType   byte
	HWRev    byte
	BLVersion byte

	InitialBusAddress byte
	InitialBusMask    byte

	// DisplayControllerType is read by POWER_UP_DISPLAY. HasDisplay is
	// false when the board has no attached display, in which case
	// POWER_UP_DISPLAY is COMMAND_NOT_SUPPORTED rather than replying
	// with a meaningless controller type.
	HasDisplay            bool
	DisplayControllerType byte
}
