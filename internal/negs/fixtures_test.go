package negs

import (
	"sort"
	"strings"
)

// fixedLine lays fields out at their offsets over a blank line of width.
func fixedLine(width int, fields map[int]string) string {
	b := []byte(strings.Repeat(" ", width))
	offsets := make([]int, 0, len(fields))
	for off := range fields {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)
	for _, off := range offsets {
		copy(b[off:], fields[off])
	}
	return string(b)
}

func headerLine(extended bool) string {
	fields := map[int]string{
		0:  "00",
		2:  "NEGS",
		6:  "0308",
		10: "BOVESPA ",
		18: "0308",
		22: "20240105",
		30: "20240104",
	}
	if extended {
		fields[39] = "S"
	}
	return fixedLine(200, fields)
}

func tradeLine(extended bool) string {
	fields := map[int]string{
		0:   "01",
		2:   "0000123",
		9:   "C",
		10:  "PETR4       ",
		22:  "010",
		25:  "000",
		28:  "PETROBRAS   ",
		40:  "PN      N2",
		50:  "00000000100",
		61:  "00000015099",
		72:  "00308",
		77:  "000",
		80:  "0",
		81:  "10:35",
		86:  "N",
		87:  "PETR4       ",
		99:  "0012345",
		106: "7",
		107: "BRPETRACNPR6",
		119: "123",
		122: "0000001",
		129: "00000000000",
		140: "N",
		149: "00000",
		167: "1",
		168: "2",
		169: "003",
		200: "N",
	}
	if extended {
		fields[172] = "017"
		fields[175] = "1"
		fields[176] = "0101"
		fields[180] = "0002"
		fields[184] = "123456789"
	}
	return fixedLine(201, fields)
}

func trailerLine() string {
	return fixedLine(200, map[int]string{
		0:  "99",
		2:  "NEGS",
		6:  "0308",
		10: "BOVESPA ",
		18: "0308",
		22: "20240105",
		30: "000000004",
	})
}

func documentLines(extended bool, trades int) []string {
	lines := []string{headerLine(extended)}
	for i := 0; i < trades; i++ {
		lines = append(lines, tradeLine(extended))
	}
	return append(lines, trailerLine())
}
