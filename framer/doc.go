// Package framer implements the two wire-format variants this core
// supports: a two-wire (I2C-style) framer and a multi-drop
// (RS485-style) framer. Both validate a transfer's size and checksum,
// strip framing to hand the command dispatcher bare opcode and
// argument bytes, and lay a reply back into the same buffer the bus
// driver supplied.
//
// A build links exactly one of the two; there is no runtime switch.
// Both share the same Dispatcher interface, so swapping bus variants
// never touches the command state machine.
package framer
