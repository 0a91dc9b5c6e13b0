package utils

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	leadingJSONFence = regexp.MustCompile("(?i)^```json\\s*")
	leadingFence     = regexp.MustCompile("^```\\s*")
	trailingFence    = regexp.MustCompile("\\s*```$")

	// braceBlock matches a {...} block allowing one level of nested braces.
	braceBlock = regexp.MustCompile(`\{(?:[^{}]|\{[^{}]*\})*\}`)
)

// ExtractJSON pulls a JSON value out of model output. It tries the raw text,
// then the text with markdown fences removed, then every balanced brace block,
// and returns ErrNoJSON when none of them parse.
func ExtractJSON(text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoJSON
	}

	if v, ok := parseJSON(text); ok {
		return v, nil
	}

	cleaned := stripCodeFence(text)
	if v, ok := parseJSON(cleaned); ok {
		return v, nil
	}

	if v, ok := longestBraceBlock(cleaned); ok {
		return v, nil
	}

	return nil, ErrNoJSON
}

func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = leadingJSONFence.ReplaceAllString(cleaned, "")
	cleaned = leadingFence.ReplaceAllString(cleaned, "")
	cleaned = trailingFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// longestBraceBlock parses each brace block and keeps the longest one that
// parses. On equal length the later block wins.
func longestBraceBlock(text string) (any, bool) {
	var (
		best    any
		bestLen = -1
	)
	for _, candidate := range braceBlock.FindAllString(text, -1) {
		v, ok := parseJSON(candidate)
		if !ok {
			continue
		}
		if len(candidate) >= bestLen {
			best, bestLen = v, len(candidate)
		}
	}
	return best, bestLen >= 0
}

func parseJSON(text string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	return v, true
}
