package source

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads an ordered list of page URLs from path, one per line. Blank
// lines and lines starting with '#' are skipped. When filter is non-empty,
// only URLs containing it are kept, so a mixed list can be narrowed to one
// site.
func Load(path string, filter string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url list: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if filter != "" && !strings.Contains(line, filter) {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url list: %w", err)
	}
	return urls, nil
}
