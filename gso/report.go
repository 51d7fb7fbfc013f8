package gso

import (
	"fmt"
	"io"
)

// WriteReport emits one line per glowworm — index, coordinates, luciferin,
// vision range, scoring, neighbor count — in glowworm order, using a fixed
// nine-decimal-place format so the output is deterministic and comparable
// byte-for-byte across runs.
func (s *Swarm) WriteReport(w io.Writer) error {
	for i, g := range s.Glowworms {
		if _, err := fmt.Fprintf(w, "%d", i); err != nil {
			return err
		}
		for _, c := range g.Position {
			if _, err := fmt.Fprintf(w, " %.9f", c); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " %.9f %.9f %.9f %d\n",
			g.Luciferin, g.VisionRange, g.LastObjective, len(g.Neighbors)); err != nil {
			return err
		}
	}
	return nil
}
