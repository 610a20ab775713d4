// Package language classifies text as English or Arabic.
package language

import (
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// Code is a resolved language tag. Only English and Arabic exist here.
type Code string

const (
	English Code = "en"
	Arabic  Code = "ar"
)

// arabicScript covers the Arabic, Arabic Supplement, and Arabic
// Extended-A blocks. Presence of any of these dominates statistical
// detection: Arabic script is never misclassified.
var arabicScript = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1},
		{Lo: 0x0750, Hi: 0x077F, Stride: 1},
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1},
	},
}

// Detect classifies text as English or Arabic. Text containing any
// Arabic-script rune is Arabic; otherwise statistical identification
// decides, failing open to English on short or ambiguous input.
func Detect(text string) Code {
	if ContainsArabic(text) {
		return Arabic
	}
	info := whatlanggo.Detect(text)
	if info.Lang == whatlanggo.Arb {
		return Arabic
	}
	return English
}

// ContainsArabic reports whether any rune falls in the Arabic script
// blocks.
func ContainsArabic(text string) bool {
	for _, r := range text {
		if unicode.Is(arabicScript, r) {
			return true
		}
	}
	return false
}

// Resolve turns a caller-supplied language field into a Code. "auto"
// runs detection on the text; anything other than "en" or "ar" fails
// open to English.
func Resolve(requested, text string) Code {
	switch requested {
	case "auto", "":
		return Detect(text)
	case string(Arabic):
		return Arabic
	case string(English):
		return English
	default:
		return English
	}
}
