package service

import (
	"encoding/json"
	"errors"
	"regexp"

	"github.com/chanboard-dev/chanboard/backend/internal/board/domain"
	"github.com/chanboard-dev/chanboard/backend/internal/common/constants"
	"github.com/chanboard-dev/chanboard/backend/internal/discord"
)

// Chat-log entries arrive wrapped in fenced code-block decoration that has
// to be stripped before the JSON payload parses.
var fencedDecoration = regexp.MustCompile("`json|\n|`")

var errMalformedEntry = errors.New("malformed chat-log entry")

func parseMessage(msg discord.Message) (domain.Message, error) {
	content := fencedDecoration.ReplaceAllString(msg.Content, "")

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Timestamp   string `json:"timestamp"`
	}
	if err := json.Unmarshal([]byte(content), &body); err != nil {
		return domain.Message{}, err
	}
	if body.Name == "" {
		return domain.Message{}, errMalformedEntry
	}

	return domain.Message{
		ID:          msg.ID,
		Name:        truncate(body.Name, constants.MaxNameLength),
		Description: truncate(body.Description, constants.MaxMessageLength),
		Timestamp:   body.Timestamp,
	}, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
