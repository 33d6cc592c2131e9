/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/viper"
)

// createdDateLayout is the layout project and cluster creation dates are
// rendered with in table output
const createdDateLayout = "02-Jan-2006 15:04"

// IsEmptyString returns true if the string is empty or whitespace
func IsEmptyString(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// IsOutputType check if the output type is t
func IsOutputType(t string) bool {
	return viper.GetString("output") == t
}

// ConfirmCommand function will add an interactive confirmation with the message provided
func ConfirmCommand(message string, bypass bool) error {
	errAborted := fmt.Errorf("command aborted")
	if bypass {
		return nil
	}
	response := false
	prompt := &survey.Confirm{
		Message: message,
	}
	err := survey.AskOne(prompt, &response)
	if err != nil {
		return err
	}
	if !response {
		return errAborted
	}
	return nil
}

// FormatTimestamp renders a server timestamp for table output. Atlas
// returns RFC 3339; anything unparseable is passed through trimmed to
// the date-time prefix.
func FormatTimestamp(ts string) string {
	if IsEmptyString(ts) {
		return "N/A"
	}
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		if len(ts) > 19 {
			return ts[:19]
		}
		return ts
	}
	return parsed.Format(createdDateLayout)
}

// Pluralize appends s to the noun unless count is one
func Pluralize(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
