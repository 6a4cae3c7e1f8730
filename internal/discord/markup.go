package discord

import "fmt"

func FormatMention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

func FormatBold(text string) string {
	return fmt.Sprintf("**%s**", text)
}

// OrNotProvided fills optional embed values, which Discord rejects when empty.
func OrNotProvided(text string) string {
	if text == "" {
		return "Not Provided"
	}
	return text
}
