package tools

import "regexp"

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var stageRe = regexp.MustCompile(`^[a-zA-Z ]+$`)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidateStageText accepts free-text stage filters: non-empty, letters and
// spaces only, at most 100 characters.
func ValidateStageText(stage string) bool {
	if stage == "" || len(stage) > 100 {
		return false
	}
	return stageRe.MatchString(stage)
}
