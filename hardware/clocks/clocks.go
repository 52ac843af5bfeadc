// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package clocks defines the nominal clock speeds, in Hertz, of the RP2350's
// named clock generators. The simulator runs everything from a single
// stepped tick rather than a real PLL tree, so these constants exist for
// peripherals (clocks, timer, PWM) that report or divide from a named clock
// rather than ticking at their own independent rate.
package clocks

const (
	// Sys is the main system clock, driving the processors and the bus fabric.
	Sys = 150_000_000

	// Ref is the reference clock, used as a stable fallback when clk_sys is
	// reconfigured, and as the divider input for the watchdog.
	Ref = 12_000_000

	// Peri is the clock fed to UART, SPI and the PWM counters.
	Peri = 150_000_000

	// USB is the clock fed to the USB controller.
	USB = 48_000_000

	// ADC is the clock fed to the ADC.
	ADC = 48_000_000

	// HSTX is the clock fed to the HSTX peripheral.
	HSTX = 150_000_000

	// XOSC is the crystal oscillator frequency that clk_ref and the PLLs are
	// ultimately derived from.
	XOSC = 12_000_000
)
