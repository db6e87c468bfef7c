package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var printedBanner bool

// PrintBanner writes the startup banner once per process. Setting
// ITEMSERVER_NO_BANNER=1 turns it off.
func PrintBanner(w io.Writer, port int, prefix string) {
	if printedBanner {
		return
	}
	if strings.TrimSpace(os.Getenv("ITEMSERVER_NO_BANNER")) == "1" {
		return
	}

	blue := color.New(color.FgCyan, color.Bold)
	tip := color.New(color.FgHiBlack)
	title := color.New(color.FgWhite, color.Bold)

	banner := []string{
		"██╗████████╗███████╗███╗   ███╗███████╗",
		"██║╚══██╔══╝██╔════╝████╗ ████║██╔════╝",
		"██║   ██║   █████╗  ██╔████╔██║███████╗",
		"██║   ██║   ██╔══╝  ██║╚██╔╝██║╚════██║",
		"██║   ██║   ███████╗██║ ╚═╝ ██║███████║",
		"╚═╝   ╚═╝   ╚══════╝╚═╝     ╚═╝╚══════╝",
	}

	fmt.Fprintln(w)
	for _, line := range banner {
		blue.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	title.Fprintln(w, "> itemserver — fixed item catalog over REST")
	tip.Fprintln(w, "\nRoutes:")
	tip.Fprintf(w, "  GET  http://localhost:%d%s/get-call-obj?query=Mac\n", port, prefix)
	tip.Fprintf(w, "  GET  http://localhost:%d%s/get-call-list\n", port, prefix)
	tip.Fprintf(w, "  POST http://localhost:%d%s/post-call/{query}\n", port, prefix)
	tip.Fprintf(w, "  POST http://localhost:%d%s/exchange-call   (X-Authorization header)\n", port, prefix)
	tip.Fprintf(w, "  GET  http://localhost:%d%s/swagger.json\n", port, prefix)
	fmt.Fprintln(w)

	printedBanner = true
}
