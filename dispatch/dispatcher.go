package dispatch

import (
	"sync/atomic"

	"github.com/3devo/tevoboot/flash"
	"github.com/3devo/tevoboot/protocol"
)

// minReplyRoom is the smallest argout buffer the dispatcher will ever
// write into; with less room ProcessCommand answers NO_REPLY for every
// opcode. Five bytes hold the longest fixed-size reply
// (GET_HARDWARE_INFO); GET_SERIAL_NUMBER's nine-byte reply has its own
// check.
const minReplyRoom = 5

// Dispatcher maps an opcode and its argument bytes to a CmdResult,
// using a SelfProgrammer and WriteSession for the flash-facing
// commands and board-info constants for everything else. It holds no
// transport state and is safe to share between the two framer
// variants, though only one is ever linked into a given build.
type Dispatcher struct {
	cfg        Config
	programmer *flash.SelfProgrammer
	session    *flash.WriteSession

	exit atomic.Bool
}

// New constructs a Dispatcher bound to programmer and session.
func New(programmer *flash.SelfProgrammer, session *flash.WriteSession, opts ...Option) *Dispatcher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Dispatcher{cfg: cfg, programmer: programmer, session: session}
}

// Exit reports whether START_APPLICATION has been processed. The
// bootloader loop polls this to know when to tear down and hand
// control to the application.
func (d *Dispatcher) Exit() bool {
	return d.exit.Load()
}

// ProcessCommand is the dispatcher's sole entry point: cmd is the
// opcode byte, argin the request's argument bytes, and argout the
// buffer any reply bytes are written into. Both framers call this
// once per validated transfer.
func (d *Dispatcher) ProcessCommand(cmd byte, argin []byte, argout []byte) protocol.CmdResult {
	if len(argout) < minReplyRoom {
		return protocol.CmdResult{Status: protocol.NoReply}
	}

	switch protocol.Opcode(cmd) {
	case protocol.GetProtocolVersion:
		return d.getProtocolVersion(argin, argout)
	case protocol.SetI2CAddress:
		return d.setI2CAddress(argin)
	case protocol.PowerUpDisplay:
		return d.powerUpDisplay(argin, argout)
	case protocol.GetHardwareInfo:
		return d.getHardwareInfo(argin, argout)
	case protocol.GetSerialNumber:
		return d.getSerialNumber(argin, argout)
	case protocol.StartApplication:
		return d.startApplication(argin)
	case protocol.WriteFlash:
		return d.writeFlash(argin, argout)
	case protocol.FinalizeFlash:
		return d.finalizeFlash(argin, argout)
	case protocol.ReadFlash:
		return d.readFlash(argin, argout)
	default:
		d.cfg.Logger.Debug("unsupported opcode", "cmd", cmd)
		return protocol.CmdResult{Status: protocol.CommandNotSupported}
	}
}

func (d *Dispatcher) getProtocolVersion(argin, argout []byte) protocol.CmdResult {
	if len(argin) != 0 {
		return protocol.CmdResult{Status: protocol.InvalidArguments}
	}
	argout[0] = protocol.ProtocolVersionMajor
	argout[1] = protocol.ProtocolVersionMinor
	return protocol.CmdResult{Status: protocol.OK, Len: 2}
}

func (d *Dispatcher) setI2CAddress(argin []byte) protocol.CmdResult {
	if len(argin) != 2 {
		return protocol.CmdResult{Status: protocol.InvalidArguments}
	}
	newAddr, hwType := argin[0], argin[1]
	if hwType != 0 && hwType != d.cfg.Board.HWType {
		return protocol.CmdResult{Status: protocol.NoReply}
	}
	if d.cfg.SetBusAddress != nil {
		d.cfg.SetBusAddress(newAddr)
	}
	d.cfg.Logger.Info("bus address assigned", "addr", newAddr)
	return protocol.CmdResult{Status: protocol.OK}
}

func (d *Dispatcher) powerUpDisplay(argin, argout []byte) protocol.CmdResult {
	if len(argin) != 0 {
		return protocol.CmdResult{Status: protocol.InvalidArguments}
	}
	if !d.cfg.Board.HasDisplay {
		return protocol.CmdResult{Status: protocol.CommandNotSupported}
	}
	if d.cfg.PowerUpDisplay != nil {
		if err := d.cfg.PowerUpDisplay(); err != nil {
			d.cfg.Logger.Error("display power-up failed", "err", err)
			return protocol.CmdResult{Status: protocol.CommandFailed}
		}
	}
	argout[0] = d.cfg.Board.DisplayControllerType
	return protocol.CmdResult{Status: protocol.OK, Len: 1}
}

func (d *Dispatcher) getHardwareInfo(argin, argout []byte) protocol.CmdResult {
	if len(argin) != 0 {
		return protocol.CmdResult{Status: protocol.InvalidArguments}
	}
	size := d.programmer.ApplicationSize()
	argout[0] = d.cfg.Board.HWType
	argout[1] = d.cfg.Board.HWRev
	argout[2] = d.cfg.Board.BLVersion
	argout[3] = byte(size >> 8)
	argout[4] = byte(size)
	return protocol.CmdResult{Status: protocol.OK, Len: 5}
}

func (d *Dispatcher) getSerialNumber(argin, argout []byte) protocol.CmdResult {
	if len(argin) != 0 {
		return protocol.CmdResult{Status: protocol.InvalidArguments}
	}
	if len(argout) < len(protocol.SerialNumberOffsets) {
		return protocol.CmdResult{Status: protocol.NoReply}
	}
	for i, offset := range protocol.SerialNumberOffsets {
		argout[i] = d.programmer.ReadSignatureByte(offset)
	}
	return protocol.CmdResult{Status: protocol.OK, Len: byte(len(protocol.SerialNumberOffsets))}
}

func (d *Dispatcher) startApplication(argin []byte) protocol.CmdResult {
	if len(argin) != 0 {
		return protocol.CmdResult{Status: protocol.InvalidArguments}
	}
	d.exit.Store(true)
	d.cfg.Logger.Info("start application requested")
	return protocol.CmdResult{Status: protocol.OK}
}

func (d *Dispatcher) writeFlash(argin, argout []byte) protocol.CmdResult {
	if len(argin) < 2 {
		return protocol.CmdResult{Status: protocol.InvalidArguments}
	}
	addr := uint16(argin[0])<<8 | uint16(argin[1])
	if err := d.session.Write(addr, argin[2:]); err != nil {
		if err == flash.ErrOutOfSequence {
			return protocol.CmdResult{Status: protocol.InvalidArguments}
		}
		return writeFailure(argout, err)
	}
	return protocol.CmdResult{Status: protocol.OK}
}

func (d *Dispatcher) finalizeFlash(argin, argout []byte) protocol.CmdResult {
	if len(argin) != 0 {
		return protocol.CmdResult{Status: protocol.InvalidArguments}
	}
	if err := d.session.Finalize(); err != nil {
		return writeFailure(argout, err)
	}
	argout[0] = d.programmer.EraseCount
	d.programmer.EraseCount = 0
	return protocol.CmdResult{Status: protocol.OK, Len: 1}
}

func (d *Dispatcher) readFlash(argin, argout []byte) protocol.CmdResult {
	if len(argin) != 3 {
		return protocol.CmdResult{Status: protocol.InvalidArguments}
	}
	addr := uint16(argin[0])<<8 | uint16(argin[1])
	length := int(argin[2])

	limit := len(argout)
	if d.cfg.MaxReadLen > 0 && d.cfg.MaxReadLen < limit {
		limit = d.cfg.MaxReadLen
	}
	if length > limit {
		return protocol.CmdResult{Status: protocol.InvalidArguments}
	}

	d.programmer.ReadFlash(addr, argout[:length])
	return protocol.CmdResult{Status: protocol.OK, Len: byte(length)}
}

func writeFailure(argout []byte, err error) protocol.CmdResult {
	if we, ok := err.(*flash.WriteError); ok {
		argout[0] = we.Code
		return protocol.CmdResult{Status: protocol.CommandFailed, Len: 1}
	}
	return protocol.CmdResult{Status: protocol.CommandFailed}
}
