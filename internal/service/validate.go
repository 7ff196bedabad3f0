package service

import "regexp"

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	urlRe   = regexp.MustCompile(`^https?://[^\s]+$`)
)

func validEmail(s string) bool { return emailRe.MatchString(s) }

func validURL(s string) bool { return urlRe.MatchString(s) }
