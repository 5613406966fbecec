package server

import (
	"regexp"

	petname "github.com/dustinkirkland/golang-petname"
)

const nicknameLength = 16

var nickRegexp = regexp.MustCompile(`[^a-zA-Z0-9_\-]+`)

// Nickname cleans an ssh user name for display. Empty and shared account
// names are replaced by a generated pet name.
func Nickname(user string) string {
	nick := nickRegexp.ReplaceAllString(user, "")
	if len(nick) > nicknameLength {
		nick = nick[:nicknameLength]
	}
	switch nick {
	case "", "root", "guest", "anonymous", "chess":
		return petname.Generate(2, "-")
	}
	return nick
}
