package gpio

import "github.com/rp2350sim/core/hardware/interrupts"

const PinCount = 30

// Controller owns every GPIO pin's register state and recomputes the
// IO_BANK0 interrupt line whenever a pin's interrupt-relevant state
// changes. IO_BANK0 and PADS_BANK0 peripherals both hold a pointer to one
// shared Controller, the same way both SIO instances share one mailbox
// block.
type Controller struct {
	pins [PinCount]Pin
	ints *interrupts.Interrupts
}

// New creates a Controller with every pin at its power-on default.
func New(ints *interrupts.Interrupts) *Controller {
	c := &Controller{ints: ints}
	for i := range c.pins {
		c.pins[i] = newPin(i)
	}
	return c
}

// InputBitmap returns the live input level of every pin packed as bit i =
// pin i, the form SIO's GPIO_IN register reads back.
func (c *Controller) InputBitmap() uint32 {
	var v uint32
	for i := range c.pins {
		if c.pins[i].InputValue() {
			v |= 1 << uint(i)
		}
	}
	return v
}

func (c *Controller) Pin(index int) *Pin {
	if index < 0 || index >= PinCount {
		return nil
	}
	return &c.pins[index]
}

// Select returns the first pin currently routed to the given function, or
// nil if none is.
func (c *Controller) Select(fn FunctionSelect) *Pin {
	for i := range c.pins {
		if c.pins[i].FuncSel() == fn {
			return &c.pins[i]
		}
	}
	return nil
}

// Drive sets a pin's raw external input value (e.g. a UART RX line or a
// button) and reevaluates the IO_BANK0 interrupt line if its status
// changed.
func (c *Controller) Drive(index int, value bool) {
	pin := c.Pin(index)
	if pin == nil {
		return
	}
	unchanged := pin.SetInput(value)
	if !unchanged {
		c.UpdateInterrupt()
	}
}

// UpdateInterrupt recomputes IOIRQBank0 from every pin's current
// interrupt status. Proc0 and Proc1 each have their own PROC{0,1}_INTE
// mask, but since this model's single Pin only stores one interrupt_mask
// field (matching the pruned original), both cores observe the same line.
func (c *Controller) UpdateInterrupt() {
	if c.ints == nil {
		return
	}
	firing := false
	for i := range c.pins {
		if c.pins[i].Interrupting() {
			firing = true
			break
		}
	}
	c.ints.SetIRQ(interrupts.IOIRQBank0, firing)
}

// Status is the GPIOx_STATUS register: post-override IRQ/IN/OE/OUT bits.
// Peripheral-driven OE/OUT are not modelled at this layer (no peripheral
// currently drives a pin's output through the controller), so those two
// fields always read back 0, matching the original's own unimplemented
// stub for them.
func (c *Controller) Status(index int) uint32 {
	pin := c.Pin(index)
	if pin == nil {
		return 0
	}
	var v uint32
	if pin.InputValue() {
		v |= 1 << 17
	}
	if pin.Interrupting() {
		v |= 1 << 26
	}
	return v
}

// UpdateCtrl writes a pin's CTRL register and reevaluates interrupts, since
// changing the irq-override or input-enable bits can change whether the
// pin is currently contributing to IOIRQBank0.
func (c *Controller) UpdateCtrl(index int, value uint32) {
	pin := c.Pin(index)
	if pin == nil {
		return
	}
	pin.WriteCtrl(value)
	c.UpdateInterrupt()
}

// UpdatePads writes a pin's PAD register.
func (c *Controller) UpdatePads(index int, value uint32) {
	pin := c.Pin(index)
	if pin == nil {
		return
	}
	pin.WritePad(value)
}

// AcknowledgeInterrupt clears the requested sticky edge bits for a pin
// (one nibble of an INTR register) and reevaluates IOIRQBank0.
func (c *Controller) AcknowledgeInterrupt(index int, value uint8) {
	pin := c.Pin(index)
	if pin == nil {
		return
	}
	pin.acknowledgeInterrupt(value)
	c.UpdateInterrupt()
}

// SetInterruptMask writes a pin's PROC0_INTE nibble and reevaluates
// IOIRQBank0.
func (c *Controller) SetInterruptMask(index int, mask uint8) {
	pin := c.Pin(index)
	if pin == nil {
		return
	}
	pin.interruptMask = mask
	c.UpdateInterrupt()
}

// SetInterruptForce writes a pin's PROC0_INTF nibble and reevaluates
// IOIRQBank0.
func (c *Controller) SetInterruptForce(index int, force uint8) {
	pin := c.Pin(index)
	if pin == nil {
		return
	}
	pin.interruptForce = force
	c.UpdateInterrupt()
}

func (c *Controller) InterruptRaw(index int) uint8 {
	pin := c.Pin(index)
	if pin == nil {
		return 0
	}
	return pin.interruptRaw
}

func (c *Controller) InterruptMask(index int) uint8 {
	pin := c.Pin(index)
	if pin == nil {
		return 0
	}
	return pin.interruptMask
}

func (c *Controller) InterruptForce(index int) uint8 {
	pin := c.Pin(index)
	if pin == nil {
		return 0
	}
	return pin.interruptForce
}

func (c *Controller) InterruptStatus(index int) uint8 {
	pin := c.Pin(index)
	if pin == nil {
		return 0
	}
	return pin.interruptStatus()
}
