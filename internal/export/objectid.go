package export

import (
	"fmt"
	"strings"
)

// ParseObjectID extracts the resource identifier from an ACL object_id
// path. The object_id must start with the expected prefix and carry a
// non-empty suffix; anything else is a malformed record.
func ParseObjectID(objectID, prefix string) (string, error) {
	suffix, ok := strings.CutPrefix(objectID, prefix)
	if !ok {
		return "", fmt.Errorf("malformed object id %q: expected prefix %q", objectID, prefix)
	}

	if suffix == "" {
		return "", fmt.Errorf("malformed object id %q: empty identifier after %q", objectID, prefix)
	}

	return suffix, nil
}
