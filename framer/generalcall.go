package framer

import "github.com/3devo/tevoboot/protocol"

// Config supplies the callbacks both framer variants need for
// general-call (broadcast address 0) handling, which happens before
// and independently of the command dispatcher.
type Config struct {
	// SystemReset performs an unconditional hardware reset. It's
	// expected never to return; GeneralCall::RESET is fatal by design.
	SystemReset func()

	// ResetBusAddress returns the bus driver to its initial
	// address/mask configuration.
	ResetBusAddress func()
}

// handleGeneralCall processes a broadcast transfer's payload. It
// never produces a reply; general calls are one-way by definition.
func handleGeneralCall(data []byte, cfg Config) {
	if len(data) != 1 {
		return
	}
	switch protocol.GeneralCall(data[0]) {
	case protocol.Reset:
		if cfg.SystemReset != nil {
			cfg.SystemReset()
		}
	case protocol.ResetAddress:
		if cfg.ResetBusAddress != nil {
			cfg.ResetBusAddress()
		}
	}
}
