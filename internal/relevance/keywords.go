// Package relevance ranks project files against free-text keywords.
package relevance

import (
	"regexp"
	"strings"
)

// hanRunRe matches maximal runs of Han characters of length >= 2.
var hanRunRe = regexp.MustCompile(`\p{Han}{2,}`)

// wordRunRe matches maximal alphanumeric runs of length >= 2.
var wordRunRe = regexp.MustCompile(`[A-Za-z0-9]{2,}`)

// hanStopWords filters Han function words that carry no search intent.
var hanStopWords = map[string]bool{
	"的话": true, "一个": true, "这个": true, "那个": true,
	"什么": true, "怎么": true, "如何": true, "为什么": true,
	"可以": true, "需要": true, "我们": true, "你们": true,
	"他们": true, "这里": true, "那里": true, "然后": true,
	"但是": true, "因为": true, "所以": true, "如果": true,
	"就是": true, "还是": true, "或者": true, "并且": true,
	"时候": true, "地方": true, "一下": true, "这些": true,
}

// ExtractKeywords tokenizes free text into a deduplicated keyword set: Han
// runs filtered against the stop-word set, lower-cased alphanumeric runs, and
// their camel-case components.
func ExtractKeywords(input string) []string {
	seen := map[string]bool{}
	var keywords []string

	add := func(kw string) {
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	for _, token := range strings.Fields(input) {
		for _, run := range hanRunRe.FindAllString(token, -1) {
			if !hanStopWords[run] {
				add(run)
			}
		}

		for _, run := range wordRunRe.FindAllString(token, -1) {
			add(strings.ToLower(run))

			// Camel-case decomposition yields extra single-component
			// keywords: getUserProfile also matches "user" and "profile".
			for _, part := range splitCamel(run) {
				if len(part) >= 2 {
					add(strings.ToLower(part))
				}
			}
		}
	}

	return keywords
}

// splitCamel splits a token on internal lower-to-upper boundaries.
func splitCamel(s string) []string {
	var parts []string
	start := 0
	for i := 1; i < len(s); i++ {
		if isUpper(s[i]) && !isUpper(s[i-1]) {
			parts = append(parts, s[start:i])
			start = i
		}
	}
	parts = append(parts, s[start:])

	if len(parts) == 1 {
		return nil // no internal boundary, nothing new to add
	}
	return parts
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
