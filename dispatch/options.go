package dispatch

import "github.com/3devo/tevoboot/protocol"

// Config holds the Dispatcher's configuration. Build one with New and
// a set of Options rather than constructing it directly.
type Config struct {
	Board protocol.BoardInfo

	// PowerUpDisplay is invoked for POWER_UP_DISPLAY when Board
	// advertises a display. Left nil when the board has none, in
	// which case POWER_UP_DISPLAY is COMMAND_NOT_SUPPORTED.
	PowerUpDisplay func() error

	// SetBusAddress is invoked by SET_I2C_ADDRESS once the hardware
	// type in the request has been validated against Board.HWType.
	SetBusAddress func(newAddr byte)

	Logger Logger

	// MaxReadLen caps how many bytes READ_FLASH will copy in a single
	// reply, on top of whatever the caller's argout buffer allows. Zero
	// means "no cap beyond the argout buffer itself".
	MaxReadLen int
}

func defaultConfig() Config {
	return Config{
		Logger: nopLogger{},
	}
}

// Option configures a Dispatcher.
type Option func(*Config)

// WithBoardInfo sets the board identity and bus defaults reported by
// GET_HARDWARE_INFO and used to validate SET_I2C_ADDRESS requests.
//
// Example:
//
//	d := dispatch.New(programmer, session, dispatch.WithBoardInfo(info))
func WithBoardInfo(info protocol.BoardInfo) Option {
	return func(c *Config) {
		c.Board = info
	}
}

// WithDisplay marks the board as having an attached display, and sets
// the callback POWER_UP_DISPLAY invokes before replying with
// controllerType.
//
// Example:
//
//	d := dispatch.New(programmer, session,
//	    dispatch.WithDisplay(0x01, func() error { return displayDriver.PowerUp() }),
//	)
func WithDisplay(controllerType byte, powerUp func() error) Option {
	return func(c *Config) {
		c.Board.HasDisplay = true
		c.Board.DisplayControllerType = controllerType
		c.PowerUpDisplay = powerUp
	}
}

// WithSetBusAddress wires SET_I2C_ADDRESS to the bus driver's address
// assignment call. On buses without runtime address assignment this
// can be left unset; SET_I2C_ADDRESS then validates its arguments and
// replies OK without taking any action.
func WithSetBusAddress(setAddr func(newAddr byte)) Option {
	return func(c *Config) {
		c.SetBusAddress = setAddr
	}
}

// WithLogger sets the logger the Dispatcher reports through.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMaxReadLen caps READ_FLASH replies at n bytes regardless of how
// much room the caller's argout buffer has.
func WithMaxReadLen(n int) Option {
	return func(c *Config) {
		c.MaxReadLen = n
	}
}
