// Package bootloop wires a framer to a bus driver: it initialises the
// bus in slave mode, polls it until a command sets the dispatcher's
// exit flag, then tears down and returns so the caller can jump to
// the application.
package bootloop

import "github.com/3devo/tevoboot/protocol"

// BusDriver is the capability the loop needs from the physical
// transport. Init, Poll, and Deinit are required by both bus variants;
// SetDeviceAddress is only meaningful on the two-wire bus and may be
// left unimplemented (a no-op) on multi-drop boards, since nothing in
// this protocol version issues it there.
type BusDriver interface {
	Init(useInterrupts bool, address, mask byte)
	Poll()
	Deinit()
	ResetDeviceAddress()
	SetDeviceAddress(newAddr byte)
}

// Board is the capability the loop needs from the platform: identity
// constants for the dispatcher, and the two operations that leave the
// bootloader's control flow (a reset and a jump to the application).
type Board interface {
	Info() protocol.BoardInfo
	SystemReset()
	StartApplication()
}

// Exiter reports whether the dispatcher has processed
// START_APPLICATION. *dispatch.Dispatcher satisfies this.
type Exiter interface {
	Exit() bool
}

// Loop runs the bootloader's main polling cycle.
type Loop struct {
	bus    BusDriver
	board  Board
	exiter Exiter
}

// New constructs a Loop bound to bus, board, and exiter.
func New(bus BusDriver, board Board, exiter Exiter) *Loop {
	return &Loop{bus: bus, board: board, exiter: exiter}
}

// Run initialises the bus driver in slave mode with the board's
// initial address and mask, then polls it until the dispatcher's exit
// flag is set. Interrupts are never enabled: polled mode keeps the
// framer synchronous with flash writes, which themselves busy-wait on
// the hardware. Run returns once the bus driver has been torn down,
// leaving the caller free to invoke Board.StartApplication.
func (l *Loop) Run() {
	info := l.board.Info()
	l.bus.Init(false, info.InitialBusAddress, info.InitialBusMask)

	for !l.exiter.Exit() {
		l.bus.Poll()
	}

	l.bus.Deinit()
}
