package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFilename(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "last path segment", url: "http://host/a/b/report.csv", expected: "report.csv"},
		{name: "single segment", url: "https://example.com/file.tar.gz", expected: "file.tar.gz"},
		{name: "root path", url: "http://host/", expected: DefaultFilename},
		{name: "no path", url: "http://host", expected: DefaultFilename},
		{name: "trailing slash", url: "http://host/a/b/", expected: DefaultFilename},
		{name: "query ignored", url: "http://host/data.json?token=abc&x=1", expected: "data.json"},
		{name: "fragment ignored", url: "http://host/page.html#section", expected: "page.html"},
		{name: "query without path", url: "http://host?q=1", expected: DefaultFilename},
		{name: "no extension", url: "http://host/latest", expected: "latest"},
		{name: "percent decoded", url: "http://host/my%20file.txt", expected: "my file.txt"},
		{name: "unicode", url: "http://host/%E4%B8%96%E7%95%8C.txt", expected: "世界.txt"},
		{name: "dot segment", url: "http://host/a/.", expected: DefaultFilename},
		{name: "dot dot segment", url: "http://host/a/..", expected: DefaultFilename},
		{name: "encoded backslash", url: "http://host/a%5Cb.txt", expected: "a_b.txt"},
		{name: "unparseable url keeps raw path", url: "http://[::1/dir/x.bin", expected: "x.bin"},
		{name: "empty", url: "", expected: DefaultFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveFilename(tt.url))
		})
	}
}

func TestResolveFilename_NeverEmptyOrDirectory(t *testing.T) {
	urls := []string{
		"http://host/", "http://host//", "http://host/a//", "http://host/%2F",
		"http://host/..", "http://host/./", "http://host/%20",
	}

	for _, u := range urls {
		name := ResolveFilename(u)
		assert.NotEmpty(t, name, u)
		assert.NotContains(t, name, "/", u)
		assert.NotEqual(t, ".", name, u)
		assert.NotEqual(t, "..", name, u)
	}
}

func TestFilenameFromContentDisposition(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "quoted filename", header: `attachment; filename="report.pdf"`, expected: "report.pdf"},
		{name: "token filename", header: `attachment; filename=data.csv`, expected: "data.csv"},
		{name: "inline", header: `inline; filename="image.png"`, expected: "image.png"},
		{name: "extended filename", header: `attachment; filename*=UTF-8''na%C3%AFve.txt`, expected: "naïve.txt"},
		{name: "path is stripped", header: `attachment; filename="../../etc/passwd"`, expected: "passwd"},
		{name: "windows path is stripped", header: `attachment; filename="C:\\temp\\evil.exe"`, expected: "evil.exe"},
		{name: "default name allowed", header: `attachment; filename="Download"`, expected: "Download"},
		{name: "dot dot rejected", header: `attachment; filename=".."`, expected: ""},
		{name: "no filename", header: `attachment`, expected: ""},
		{name: "empty filename", header: `attachment; filename=""`, expected: ""},
		{name: "malformed", header: `attachment; filename="unterminated`, expected: ""},
		{name: "empty header", header: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilenameFromContentDisposition(tt.header))
		})
	}
}
