package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  _____     _                    _       _ ",
	" |_   _| __(_)_ __   ___  _ __ ___ (_) __ _| |",
	"   | || '__| | '_ \\ / _ \\| '_ ` _ \\| |/ _` | |",
	"   | || |  | | | | | (_) | | | | | | | (_| | |",
	"   |_||_|  |_|_| |_|\\___/|_| |_| |_|_|\\__,_|_|",
}

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

// PrintBanner writes the Trinomial banner and version to w.
// Colours follow the terminal's detected profile.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i%len(bannerColors)])))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, termenv.String("   v"+v).Faint())
	}
	fmt.Fprintln(w)
}
