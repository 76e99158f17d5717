package fanbook

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// signatureFields are the headers covered by the request signature.
type signatureFields struct {
	Nonce         string
	Timestamp     string
	Authorization string
	AppKey        string
	RequestBody   string
	Platform      string
}

func (f signatureFields) toMap() map[string]string {
	return map[string]string{
		"Nonce":         f.Nonce,
		"Timestamp":     f.Timestamp,
		"Authorization": f.Authorization,
		"AppKey":        f.AppKey,
		"RequestBody":   f.RequestBody,
		"Platform":      f.Platform,
	}
}

// signature builds the platform's request signature: the fields sorted
// by name into a k=v chain, the secret appended, the chain
// percent-encoded and MD5-hexed.
func signature(fields signatureFields, secret string) string {
	m := fields.toMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+m[k])
	}
	chain := strings.Join(pairs, "&") + "&" + secret

	sum := md5.Sum([]byte(percentEncode(chain)))
	return hex.EncodeToString(sum[:])
}

// percentEncode escapes everything outside the RFC 3986 unreserved set
// with uppercase hex, matching the front-end's strict
// encodeURIComponent variant byte for byte.
func percentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '_', c == '.', c == '~':
			b.WriteByte(c)
		default:
			b.WriteString(fmt.Sprintf("%%%02X", c))
		}
	}
	return b.String()
}
