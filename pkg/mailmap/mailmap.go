// Package mailmap reads git .mailmap files that fold alternate author
// email addresses into canonical identities.
package mailmap

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Identity is one canonical author with the alias addresses that map to it.
type Identity struct {
	Name      string
	Canonical string
	Aliases   []string
}

// Map holds identities keyed by canonical email.
type Map map[string]*Identity

// aliasLine matches `Display Name <canonical@email> <alias@email>`.
var aliasLine = regexp.MustCompile(`^(.*)<(.+@.+)>\s+<(.+@.+)>$`)

// Load parses the mailmap file at path. An absent file yields an empty
// map and no error. Parsing is best-effort: comments and blank lines
// are skipped, and lines that do not match the two-address form are
// dropped without complaint. Repeated lines for one canonical email
// accumulate aliases onto the same identity.
func Load(path string) (Map, error) {
	result := make(Map)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}

		return nil, fmt.Errorf("open mailmap: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parseLine(scanner.Text(), result)
	}

	scanErr := scanner.Err()
	if scanErr != nil {
		return nil, fmt.Errorf("read mailmap: %w", scanErr)
	}

	return result, nil
}

func parseLine(line string, result Map) {
	line, _, _ = strings.Cut(line, "#")

	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	groups := aliasLine.FindStringSubmatch(line)
	if groups == nil {
		return
	}

	name := strings.TrimSpace(groups[1])
	canonical := groups[2]
	alias := groups[3]

	identity, exists := result[canonical]
	if !exists {
		identity = &Identity{Name: name, Canonical: canonical}
		result[canonical] = identity
	}

	identity.Aliases = append(identity.Aliases, alias)
}
