// Package text turns a fetched body into a printable string.
package text

import (
	"fmt"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/margo/wget/sdk/types"
)

const defaultCharset = "utf-8"

// Charset picks the character set for body. An explicit charset parameter in
// contentType wins, then whatever mimetype sniffs from the content, then UTF-8.
func Charset(body []byte, contentType string) string {
	if cs := charsetParam(contentType); cs != "" {
		return cs
	}
	if len(body) > 0 {
		if cs := charsetParam(mimetype.Detect(body).String()); cs != "" {
			return cs
		}
	}
	return defaultCharset
}

// Decode converts body to a UTF-8 string. Invalid byte sequences are replaced
// with U+FFFD instead of failing. Only an unknown charset label is an error.
func Decode(body []byte, contentType string) (string, error) {
	label := Charset(body, contentType)

	enc, err := htmlindex.Get(label)
	if err != nil {
		return "", types.NewDownloadError(types.ErrorKindDecode, types.OperationDecodingText,
			fmt.Errorf("unsupported charset %q: %w", label, err))
	}

	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", types.NewDownloadError(types.ErrorKindDecode, types.OperationDecodingText,
			fmt.Errorf("failed to decode %s body: %w", label, err))
	}

	return string(out), nil
}

func charsetParam(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(params["charset"]))
}
