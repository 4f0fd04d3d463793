// Package protocol defines the wire-stable vocabulary shared by every
// framer and the command dispatcher: status codes, the command result
// type, opcode numbers, general-call payloads, and the board-identity
// constants a device advertises to the host.
//
// Nothing in this package touches flash, a bus, or I/O of any kind;
// it exists so framer and dispatch can agree on byte values without
// importing each other.
package protocol
