package output

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// paletteTitle turns "brand-red" into "Brand Red".
func paletteTitle(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "-", " "))
}
