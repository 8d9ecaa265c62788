package hw

// Button bits of the standard paddle, in shift-out order (A first).
const (
	ButtonA = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller models one standard paddle port: an input latch continuously
// updated by the host, and a shift register reloaded from the latch on the
// strobe 1->0 transition. After eight reads without a re-latch the shift
// register returns 1s, like the real serial protocol.
type Controller struct {
	buttons uint8 // current input latch, host-written
	shift   uint8
}

// SetButtons stores the host-side button state into the input latch.
func (c *Controller) SetButtons(state uint8) {
	c.buttons = state
}

// Buttons returns the current input latch.
func (c *Controller) Buttons() uint8 {
	return c.buttons
}

func (c *Controller) latch() {
	c.shift = c.buttons
}

// read returns the next serial bit. With the strobe held high the shift
// register is bypassed and bit 0 of the live latch is returned.
func (c *Controller) read(strobe bool) uint8 {
	if strobe {
		return c.buttons & 1
	}
	bit := c.shift & 1
	c.shift = c.shift>>1 | 0x80
	return bit
}
