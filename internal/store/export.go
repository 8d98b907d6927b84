package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ExportMarkdown renders entries, oldest first, as one markdown document.
func ExportMarkdown(entries []Entry) string {
	var b strings.Builder
	b.WriteString("# RAG Query History\n\n")
	if len(entries) == 0 {
		b.WriteString("_No queries yet._\n")
		return b.String()
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		b.WriteString(fmt.Sprintf("## %s\n\n", oneLine(e.Query)))
		b.WriteString(fmt.Sprintf("_%s · documents used: %d · processing time: %.2fs_\n\n",
			e.CreatedAt.UTC().Format(time.RFC3339), e.DocumentsUsed, e.ProcessingTime))
		b.WriteString(strings.TrimSpace(e.Answer))
		b.WriteString("\n\n")
		if len(e.Sections) > 0 {
			b.WriteString("### Sections\n\n")
			for _, s := range e.Sections {
				b.WriteString("- " + oneLine(s) + "\n")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// WriteExport writes the markdown export into dir and returns its path.
func WriteExport(dir string, entries []Entry, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.Wrap(err, "create export dir")
	}
	path := filepath.Join(dir, fmt.Sprintf("history_%s.md", now.UTC().Format("20060102T150405Z")))
	if err := os.WriteFile(path, []byte(ExportMarkdown(entries)), 0o600); err != nil {
		return "", errors.Wrap(err, "write export")
	}
	return path, nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
