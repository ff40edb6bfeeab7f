package redis

import "strings"

const defaultKeyPrefix = "ezysubs"

type keys struct {
	ongoing string
	live    string
	history string
}

func newKeys(prefix string) keys {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return keys{
		ongoing: prefix + ":game:ongoing",
		live:    prefix + ":game:live",
		history: prefix + ":game:history",
	}
}
