// Package ui provides console output for the FarmAssist gateway.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// Version is the gateway release shown in the banner.
const Version = "v1.0.0"

// PrintBanner displays the startup banner.
func PrintBanner() {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.FgHiBlack)

	fmt.Println()
	green.Println("╔══════════════════════════════════════════════╗")
	green.Print("║  ")
	yellow.Print("🌾 FARMASSIST GATEWAY")
	dim.Print("  translate·chat·remedy")
	green.Println("  ║")
	green.Print("║  ")
	dim.Printf("%-44s", Version)
	green.Println("║")
	green.Println("╚══════════════════════════════════════════════╝")
	fmt.Println()
}
