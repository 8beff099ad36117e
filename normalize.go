// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package cmdusage

import "strings"

// Normalize lowercases every raw token and keeps only tokens that consist
// entirely of letters afterwards. Paths, flags, PIDs and fragments of damaged
// text all contain non-letter characters and are rejected here instead of
// being cleaned up in every reader. The relative order of the surviving
// tokens is preserved. Normalize is idempotent.
func Normalize(tokens []string) []string {
	normalized := make([]string, 0, len(tokens))
	for _, token := range tokens {
		key, ok := normalizeToken(token)
		if !ok {
			continue
		}
		normalized = append(normalized, key)
	}
	return normalized
}

func normalizeToken(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	key := strings.ToLower(token)
	for _, r := range key {
		if r < 'a' || r > 'z' {
			return "", false
		}
	}
	return key, true
}
