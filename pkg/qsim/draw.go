package qsim

import (
	"fmt"
	"strings"
)

// Draw renders the circuit as text, one wire per qubit with its gates and a
// trailing measurement box:
//
//	q_0: ──[H]──[M]──
//	q_1: ──[H]──[M]──
func (c *Circuit) Draw() string {
	width := 0
	for _, gates := range c.gates {
		if len(gates) > width {
			width = len(gates)
		}
	}

	var sb strings.Builder
	for q, gates := range c.gates {
		sb.WriteString(fmt.Sprintf("q_%d: ──", q))
		for col := 0; col < width; col++ {
			if col < len(gates) {
				sb.WriteString(fmt.Sprintf("[%s]──", gates[col]))
			} else {
				sb.WriteString("─────")
			}
		}
		sb.WriteString("[M]──")

		if q < len(c.gates)-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
