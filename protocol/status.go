package protocol

// Status is the single result byte every command handler returns. Its
// values are wire-stable: hosts on both bus variants key their retry
// and error-reporting logic off these exact numbers.
type Status byte

const (
	// OK means the command completed and any reply bytes are valid.
	OK Status = 0x00

	// NoReply means the framer must not send a response at all. The
	// dispatcher returns it when the reply buffer is too small, and for
	// SET_I2C_ADDRESS requests naming a different hardware type.
	NoReply Status = 0x01

	// InvalidTransfer means the transfer was too short to hold an
	// opcode and its checksum.
	InvalidTransfer Status = 0x02

	// InvalidCRC means the frame's checksum didn't match its payload.
	InvalidCRC Status = 0x03

	// InvalidArguments means the command's own argument bytes failed
	// validation (bad length, unaligned flash address, out-of-order
	// write, and so on).
	InvalidArguments Status = 0x04

	// CommandNotSupported means the opcode byte isn't one the
	// dispatcher recognises.
	CommandNotSupported Status = 0x05

	// CommandFailed means the opcode was recognised and its arguments
	// were well-formed, but the operation itself could not complete
	// (for example, an unsupported reset-vector opcode during a flash
	// write).
	CommandFailed Status = 0x06
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case NoReply:
		return "NO_REPLY"
	case InvalidTransfer:
		return "INVALID_TRANSFER"
	case InvalidCRC:
		return "INVALID_CRC"
	case InvalidArguments:
		return "INVALID_ARGUMENTS"
	case CommandNotSupported:
		return "COMMAND_NOT_SUPPORTED"
	case CommandFailed:
		return "COMMAND_FAILED"
	default:
		return "UNKNOWN_STATUS"
	}
}

// CmdResult is what a command handler and the Dispatcher hand back to
// a framer: the outcome, and how many bytes of the reply buffer the
// handler actually populated.
type CmdResult struct {
	Status Status
	Len    byte
}
