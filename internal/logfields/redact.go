package logfields

import "net/url"

// RedactURL strips user info from u. Clone URLs carry the access token there.
func RedactURL(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.User == nil {
		return u
	}
	parsed.User = url.User("***")
	return parsed.String()
}
