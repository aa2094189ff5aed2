package manifest

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// ExpandEnv replaces every ${env.KEY} in value with the environment variable
// KEY, or "" when unset. A reference with an invalid key or no closing brace
// is kept literally.
func ExpandEnv(value string) string {
	return expand(value, os.Getenv)
}

func expand(value string, lookup func(string) string) string {
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(value[i:], envPrefix)
		if idx < 0 {
			b.WriteString(value[i:])
			return b.String()
		}
		b.WriteString(value[i : i+idx])
		keyStart := i + idx + len(envPrefix)
		keyLen := strings.IndexByte(value[keyStart:], '}')
		if keyLen < 0 {
			b.WriteString(value[i+idx:])
			return b.String()
		}
		key := value[keyStart : keyStart+keyLen]
		if !validKey(key) {
			// rescan right after the prefix so nested references still expand
			b.WriteString(envPrefix)
			i = keyStart
			continue
		}
		b.WriteString(lookup(key))
		i = keyStart + keyLen + 1
	}
}

func validKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
