package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caldera3d/caldera/internal/shadertypes"
)

// printLayout dumps the CPU side of the render contract: every struct field
// with its GPU byte offset, plus a fingerprint over the whole table. Two
// builds that print different fingerprints do not share a layout.
func printLayout(cmd *cobra.Command, args []string) error {
	if dumpWGSL {
		fmt.Print(shadertypes.WGSLSource)
		return nil
	}

	fmt.Print(shadertypes.Manifest())
	fmt.Println()
	for _, f := range shadertypes.Layout() {
		fmt.Printf("%-22s %-24s offset %3d  size %3d\n", f.Struct, f.Name, f.Offset, f.Size)
	}
	fmt.Printf("\nfingerprint %016x\n", shadertypes.Fingerprint())
	return nil
}
