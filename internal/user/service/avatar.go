package service

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// AvatarURL returns the Gravatar identicon URL for an email: a pure
// function of the md5 of the lower-cased, trimmed address and the
// requested pixel size.
func AvatarURL(email string, size int) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	digest := md5.Sum([]byte(normalized))
	return fmt.Sprintf(
		"https://www.gravatar.com/avatar/%s?d=identicon&s=%d",
		hex.EncodeToString(digest[:]),
		size,
	)
}
