// Package translate formats user-facing messages in the host's language.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// hostPrinter selects a printer for the user's preferred locales,
// falling back to en-US.
func hostPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("ls8: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage replaces the host locale selection. Messages are formatted
// when they are printed, so existing errors follow the new language.
func SetLanguage(tag language.Tag) {
	printerOnce.Do(func() {})
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	printerOnce.Do(func() {
		printer = hostPrinter()
	})
	return printer.Sprintf(key, args...)
}

// Error is a sentinel error whose en-US message is translated each time
// it is formatted.
type Error string

func (err Error) Error() string {
	return From(string(err))
}
