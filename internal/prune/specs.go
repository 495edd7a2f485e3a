package prune

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseSpecsFile reads a tab-delimited file naming additional resources
// to pass through verbatim. Each line holds a path relative to the
// export root, optionally followed by a tab and further fields, which
// are ignored. Blank lines and lines starting with '#' are skipped.
func ParseSpecsFile(path string) ([]passThroughResource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening specs file: %w", err)
	}
	defer f.Close()

	var resources []passThroughResource

	scanner := bufio.NewScanner(f)

	num := 0
	for scanner.Scan() {
		num++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name := strings.TrimSpace(strings.SplitN(line, "\t", 2)[0])
		if name == "" {
			return nil, fmt.Errorf("specs file %s line %d: empty resource name", path, num)
		}

		if strings.HasPrefix(name, "/") || strings.Contains(name, "..") {
			return nil, fmt.Errorf("specs file %s line %d: resource name %q must be a relative path inside the export", path, num, name)
		}

		resources = append(resources, passThroughResource{Name: name})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading specs file %s: %w", path, err)
	}

	return resources, nil
}
