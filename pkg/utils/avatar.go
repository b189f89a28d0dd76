package utils

import (
	"fmt"
	"strings"
)

// AvatarURL returns a deterministic placeholder avatar for a display name.
// The same name always maps to the same image.
func AvatarURL(name string) string {
	seed := strings.ReplaceAll(name, " ", "")
	if seed == "" {
		seed = "traveler"
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/600/600", seed)
}
