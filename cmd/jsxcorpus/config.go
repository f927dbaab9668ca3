package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jsxcorpus"
)

// loadConfig is the kong configuration loader behind --config. It accepts
// the camelCase keys of the crawler config ("maxPagesToCrawl") and hands
// them to kong.JSON as the snake_case names kong derives from flags.
// Scalars are passed as strings so kong's mappers parse them exactly as
// they parse flag values.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, jsxcorpus.Errorf(jsxcorpus.EINVALID, "decode config: %v", err)
	}

	keyed := make(map[string]any, len(raw))
	for k, v := range raw {
		keyed[snakeCase(k)] = flagValue(v)
	}
	data, err := json.Marshal(keyed)
	if err != nil {
		return nil, err
	}
	return kong.JSON(bytes.NewReader(data))
}

func flagValue(v any) any {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		for i := range v {
			v[i] = flagValue(v[i])
		}
		return v
	default:
		return v
	}
}

// snakeCase converts "maxPagesToCrawl" and "max-pages" to "max_pages_to_crawl"
// and "max_pages".
func snakeCase(s string) string {
	var sb strings.Builder
	prev := rune(0)
	for _, r := range s {
		switch {
		case r == '-':
			sb.WriteRune('_')
		case unicode.IsUpper(r):
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				sb.WriteRune('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
		prev = r
	}
	return sb.String()
}

// loadProfiles reads the transform profiles from path, or returns the
// default profiles when path is empty. Unknown keys are rejected.
func loadProfiles(path string) (jsxcorpus.Profiles, error) {
	if path == "" {
		return jsxcorpus.DefaultProfiles(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return jsxcorpus.Profiles{}, err
	}
	defer f.Close()

	var profiles jsxcorpus.Profiles
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&profiles); err != nil {
		return jsxcorpus.Profiles{}, jsxcorpus.Errorf(jsxcorpus.EINVALID, "decode profiles %s: %v", path, err)
	}
	if err := profiles.Validate(); err != nil {
		return jsxcorpus.Profiles{}, err
	}
	return profiles, nil
}

// readSystemPrompt returns the content of path, or "" when path is empty.
func readSystemPrompt(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", jsxcorpus.Errorf(jsxcorpus.EINVALID, "system prompt file %s is empty", path)
	}
	return prompt, nil
}
