package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// resolveList merges a comma-separated flag value and an optional file into
// one normalized fragment list: lowercased, trimmed, blanks and comment
// lines dropped, de-duplicated with input order preserved. An empty result
// is a hard error; it must be rejected before any lookup begins.
func resolveList(listArg, fileArg, name string) ([]string, error) {
	raw := make([]string, 0)

	if strings.TrimSpace(listArg) != "" {
		raw = append(raw, strings.Split(listArg, ",")...)
	}

	if strings.TrimSpace(fileArg) != "" {
		fromFile, err := readListFile(fileArg)
		if err != nil {
			return nil, err
		}
		raw = append(raw, fromFile...)
	}

	seen := make(map[string]struct{}, len(raw))
	items := make([]string, 0, len(raw))
	for _, value := range raw {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		items = append(items, value)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no %s provided", name)
	}
	return items, nil
}

// readListFile reads one fragment per line, skipping blanks and # comments.
// "-" reads from stdin.
func readListFile(path string) ([]string, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close() // nolint:errcheck // best-effort cleanup on read-only file
		reader = file
	}

	items := make([]string, 0)
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
