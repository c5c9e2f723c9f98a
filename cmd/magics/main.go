package main

import (
	"flag"
	"fmt"
	"math/bits"

	mg "chess-picker/pickmg"
)

// Prints the magic multipliers found at startup, in a form that can be
// pasted into other tools or eyeballed against published tables.
func main() {
	verbose := flag.Bool("v", false, "Also print relevance masks and table offsets")
	flag.Parse()

	for _, rook := range []bool{true, false} {
		name := "rook"
		if !rook {
			name = "bishop"
		}
		fmt.Printf("// %s magics\n", name)
		var entries int
		for sq := mg.Square(0); sq < 64; sq++ {
			magic, shift, offset := mg.MagicConstants(sq, rook)
			mask := mg.RookRelevanceMask(sq)
			if !rook {
				mask = mg.BishopRelevanceMask(sq)
			}
			entries += 1 << uint(bits.OnesCount64(mask))
			if *verbose {
				fmt.Printf("%s: magic %#016x shift %2d offset %#07x mask %#016x\n",
					sq, magic, shift, offset, mask)
			} else {
				fmt.Printf("%#016x,", magic)
				if sq%4 == 3 {
					fmt.Println()
				}
			}
		}
		fmt.Printf("// %s table: %d entries (%d KiB)\n\n", name, entries, entries*8/1024)
	}
}
