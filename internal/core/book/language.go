// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// languageName returns the native name of a stored language code such as
// "ENG" or "SPA". Values that are not ISO 639 codes yield "".
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return display.Self.Name(tag)
}

func describeLanguages(books ...*Book) {
	for _, book := range books {
		book.LanguageName = languageName(book.Language)
	}
}
