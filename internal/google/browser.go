package google

import (
	"os"

	"github.com/pkg/browser"
)

func init() {
	// stdout carries the operator-facing output.
	browser.Stdout = os.Stderr
}

// OpenBrowser opens url with the platform's default handler.
func OpenBrowser(url string) error {
	return browser.OpenURL(url)
}
