// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses loosely formatted list values from env vars and query strings.
package query

import "strings"

// CommaList splits a comma-separated value, trimming blanks and dropping empty items.
func CommaList(val string) []string {
	if val == "" {
		return nil
	}

	var res []string
	for _, v := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(v); clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
