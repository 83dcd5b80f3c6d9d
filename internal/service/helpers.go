package service

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLen   = 255
	maxCommentLen = 2000
	maxNameLen    = 100
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

// displayName: имя профиля или локальная часть email
func displayName(email string, name *string) string {
	if name != nil && strings.TrimSpace(*name) != "" {
		return strings.TrimSpace(*name)
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

// chatBio: "курс - вуз" без пустых частей
func chatBio(course, college *string) string {
	var parts []string
	for _, f := range []*string{course, college} {
		if f != nil && strings.TrimSpace(*f) != "" {
			parts = append(parts, strings.TrimSpace(*f))
		}
	}
	return strings.Join(parts, " - ")
}

func tooLong(s string, n int) bool { return utf8.RuneCountInString(s) > n }

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
