package file

import (
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// DefaultFilename is used when nothing usable can be extracted from the URL
const DefaultFilename = "Download"

// ResolveFilename derives the destination filename from the last segment of
// the URL path. Query and fragment are ignored. A path that is empty, ends in
// "/" or ends in a dot segment yields DefaultFilename.
func ResolveFilename(rawURL string) string {
	var p string
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	} else {
		p = rawPath(rawURL)
	}

	if p == "" || strings.HasSuffix(p, "/") {
		return DefaultFilename
	}

	return sanitizeFilename(path.Base(p))
}

// rawPath strips scheme, host, query and fragment from a URL that url.Parse rejected
func rawPath(rawURL string) string {
	s := rawURL
	if idx := strings.IndexAny(s, "?#"); idx != -1 {
		s = s[:idx]
	}
	if idx := strings.Index(s, "://"); idx != -1 {
		s = s[idx+3:]
		if slash := strings.Index(s, "/"); slash != -1 {
			return s[slash:]
		}
		return ""
	}
	return s
}

// FilenameFromContentDisposition extracts the filename parameter from a
// Content-Disposition header. It returns "" when the header carries no
// usable name.
func FilenameFromContentDisposition(cd string) string {
	if cd == "" {
		return ""
	}

	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return ""
	}

	name := params["filename"]
	if name == "" {
		return ""
	}

	// never let the server pick a directory
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == DefaultFilename {
		return name
	}
	if sanitized := sanitizeFilename(name); sanitized != DefaultFilename {
		return sanitized
	}
	return ""
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	switch name {
	case "", ".", "..", "/":
		return DefaultFilename
	}
	if strings.ContainsAny(name, `/\`) {
		name = strings.Map(func(r rune) rune {
			if r == '/' || r == '\\' {
				return '_'
			}
			return r
		}, name)
	}
	return name
}
