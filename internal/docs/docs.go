// Package docs holds the markdown help shown by `checklist docs` and the TUI's ? overlay.
package docs

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed content/*.md
var content embed.FS

const topicExt = ".md"

// Topics lists the embedded topic names, sorted.
func Topics() []string {
	entries, err := fs.ReadDir(content, "content")
	if err != nil {
		return []string{}
	}
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), topicExt); ok && !e.IsDir() && name != "" {
			topics = append(topics, name)
		}
	}
	sort.Strings(topics)
	return topics
}

// Get returns the markdown for topic; lookups ignore case and surrounding space.
func Get(topic string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(topic))
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	b, err := content.ReadFile("content/" + name + topicExt)
	if err != nil {
		return "", false
	}
	return string(b), true
}
