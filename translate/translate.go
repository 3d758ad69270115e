// Package translate formats user visible messages for the current locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	selected language.Tag
	printer  *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("urm: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the message printer for the best match among the
// preferred locales, and returns the language selected. An empty list
// selects en-US.
func SetLanguage(locales ...string) language.Tag {
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	selected = message.MatchLanguage(locales...)
	printer = message.NewPrinter(selected)
	return selected
}

// Language returns the language messages are formatted in.
func Language() language.Tag {
	return selected
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
