package framer

import (
	"github.com/3devo/tevoboot/checksum"
	"github.com/3devo/tevoboot/protocol"
)

// MultiDropFramer is the per-transfer entry point for a multi-drop
// (RS485-style) bus driver. Every device on the bus sees every
// transfer; addressing and CRC both have to confirm a frame was
// actually meant for this device before anything is dispatched.
type MultiDropFramer struct {
	dispatcher Dispatcher
	cfg        Config
}

// NewMultiDropFramer constructs a MultiDropFramer.
func NewMultiDropFramer(dispatcher Dispatcher, cfg Config) *MultiDropFramer {
	return &MultiDropFramer{dispatcher: dispatcher, cfg: cfg}
}

// HandleTransfer validates, dispatches, and replies to one transfer.
// buf holds everything after the address byte (which the bus driver
// passes separately as address); length includes the two trailing CRC
// bytes. The returned length is how many bytes of buf to transmit,
// addressed and all; 0 means send nothing.
//
// address 0 is a broadcast: no branch below it ever produces a reply,
// even a malformed one, since every device on the bus would otherwise
// try to answer a broadcast at once.
func (f *MultiDropFramer) HandleTransfer(address byte, buf []byte, length int, maxLen int) int {
	// Room for address, status, length, and a trailing CRC-16.
	if maxLen < 5 {
		return 0
	}

	if length < 3 {
		if address == 0 {
			return 0
		}
		return f.reply(address, buf, protocol.CmdResult{Status: protocol.InvalidTransfer})
	}

	var crc checksum.CRC16
	crc.Update(address)
	crc.UpdateBytes(buf[:length-2])
	want := uint16(buf[length-2]) | uint16(buf[length-1])<<8
	if crc.Get() != want {
		// The frame may not have been addressed to us at all; stay
		// silent rather than reporting an error on someone else's
		// traffic.
		return 0
	}

	if address == 0 {
		handleGeneralCall(buf[:length-2], f.cfg)
		return 0
	}

	res := f.dispatcher.ProcessCommand(buf[0], buf[1:length-2], buf[3:maxLen-2])
	if res.Status == protocol.NoReply {
		return 0
	}
	return f.reply(address, buf, res)
}

func (f *MultiDropFramer) reply(address byte, buf []byte, res protocol.CmdResult) int {
	buf[0] = address
	buf[1] = byte(res.Status)
	buf[2] = res.Len
	replyLen := 3 + int(res.Len)

	var crc checksum.CRC16
	crc.UpdateBytes(buf[:replyLen])
	buf[replyLen] = byte(crc.Get())
	buf[replyLen+1] = byte(crc.Get() >> 8)

	return replyLen + 2
}
