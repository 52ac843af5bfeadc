// Package socdebug renders a constructed soc.SoC's object graph to
// Graphviz DOT, the same offline-inspection role the teacher gives
// bradleyjkemp/memviz over its command template parser.
package socdebug

import (
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/rp2350sim/core/hardware/soc"
)

// Dump writes s's object graph (scheduler, bus, peripheral registry, both
// cores) to w as Graphviz DOT. It is purely observational: nothing about
// s's behaviour depends on whether Dump is ever called.
func Dump(w io.Writer, s *soc.SoC) {
	memviz.Map(w, s)
}
