// Package invite extracts invite codes from raw invite links and
// builds shareable links from them.
package invite

import "strings"

// ExtractCode returns the invite code embedded in a raw invite link:
// the last path segment, with any query string stripped. Empty input
// yields an empty code.
func ExtractCode(rawLink string) string {
	if rawLink == "" {
		return ""
	}
	parts := strings.Split(rawLink, "/")
	last := parts[len(parts)-1]
	code, _, _ := strings.Cut(last, "?")
	return code
}

// BuildShareLink assembles the shareable invite link
// {origin}{basePath}/invite/{code}. The path is normalized to a single
// leading slash regardless of how basePath is configured.
func BuildShareLink(origin, basePath, code string) string {
	origin = strings.TrimSuffix(origin, "/")
	basePath = strings.Trim(basePath, "/")
	if basePath != "" {
		basePath = "/" + basePath
	}
	return origin + basePath + "/invite/" + code
}
