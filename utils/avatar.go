package utils

import (
	"fmt"
	"math/rand"
	"strings"
)

// GenerateImageURL builds an initials avatar URL for a display name.
func GenerateImageURL(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "https://ui-avatars.com/api/?name=User&background=random&color=fff"
	}

	var initials string
	if len(words) >= 2 {
		initials = firstRuneUpper(words[0]) + firstRuneUpper(words[1])
	} else {
		initials = firstRuneUpper(words[0])
	}

	color := fmt.Sprintf("%06x", rand.Intn(0xffffff+1))
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=%s&color=fff", initials, color)
}

func firstRuneUpper(word string) string {
	for _, r := range word {
		return strings.ToUpper(string(r))
	}
	return ""
}
