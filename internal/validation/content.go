package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLength   = 200
	maxBodyLength    = 50000
	maxCommentLength = 2000
)

// ValidatePostTitle validates a post title is present and within limits.
func ValidatePostTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("title must be at most %d characters", maxTitleLength)
	}
	return nil
}

// ValidatePostBody validates post body content is present and within limits.
func ValidatePostBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("post content is required")
	}
	if utf8.RuneCountInString(body) > maxBodyLength {
		return fmt.Errorf("post content must be at most %d characters", maxBodyLength)
	}
	return nil
}

// ValidateCommentMessage validates a comment message is present and within limits.
func ValidateCommentMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("comment message is required")
	}
	if utf8.RuneCountInString(message) > maxCommentLength {
		return fmt.Errorf("comment message must be at most %d characters", maxCommentLength)
	}
	return nil
}
