package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// Usernames that collide with route segments of the public profile URL space.
var reservedUsernames = map[string]struct{}{
	"admin":     {},
	"api":       {},
	"auth":      {},
	"circle":    {},
	"dashboard": {},
	"follow":    {},
	"health":    {},
	"login":     {},
	"me":        {},
	"metrics":   {},
	"portfolio": {},
	"profile":   {},
	"qr":        {},
	"search":    {},
	"settings":  {},
	"signup":    {},
	"swagger":   {},
	"unfollow":  {},
	"users":     {},
	"ws":        {},
}

// IsReservedUsername reports whether the username collides with a route name.
func IsReservedUsername(username string) bool {
	_, exists := reservedUsernames[strings.ToLower(username)]
	return exists
}

const (
	maxFullnameLen = 100
	maxBioLen      = 500
	maxLinkURLLen  = 2048
)

// ValidateFullname bounds the display name length.
func ValidateFullname(fullname string) error {
	if len(fullname) > maxFullnameLen {
		return fmt.Errorf("fullname must be at most %d characters", maxFullnameLen)
	}
	return nil
}

// ValidateBio bounds the bio length.
func ValidateBio(bio string) error {
	if len(bio) > maxBioLen {
		return fmt.Errorf("bio must be at most %d characters", maxBioLen)
	}
	return nil
}

// ValidateLinkURL accepts absolute http(s) URLs only.
func ValidateLinkURL(raw string) error {
	if len(raw) > maxLinkURLLen {
		return fmt.Errorf("url must be at most %d characters", maxLinkURLLen)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("url must include a host")
	}
	return nil
}
