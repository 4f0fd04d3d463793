// Package dispatch implements the command state machine: mapping an
// opcode and its argument bytes to a protocol.CmdResult using a
// flash.SelfProgrammer and flash.WriteSession for flash-facing
// commands, and board-info constants for everything else.
//
// Dispatcher knows nothing about bus addressing or CRC framing; the
// framer package validates a transfer and hands ProcessCommand
// already-stripped opcode and argument bytes.
//
// # Configuration
//
// Build a Dispatcher with New and a set of Options:
//
//	d := dispatch.New(programmer, session,
//	    dispatch.WithBoardInfo(protocol.BoardInfo{HWType: 0x01, HWRev: 0x02, BLVersion: 0x01}),
//	    dispatch.WithLogger(myLogger),
//	)
package dispatch
