package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors for /addtask arguments. Handlers map all of them to
// the usage reply; the distinction exists for logging and tests.
var (
	errAddTaskFieldCount = errors.New("addtask requires exactly 4 pipe-separated fields")
	errAddTaskEmptyField = errors.New("addtask title and url must be non-empty")
	errAddTaskReward     = errors.New("addtask reward must be a positive number")
)

// parseStartReferrer extracts the optional referrer ID from a /start
// command. A second argument that is not all digits is ignored, matching
// deep-link payload behavior.
func parseStartReferrer(text string) *int64 {
	args := strings.Fields(text)
	if len(args) < 2 {
		return nil
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id < 0 {
		return nil
	}
	return &id
}

// parseDoneTaskID extracts the task ID from a /done command. The second
// return value is false when the command is malformed.
func parseDoneTaskID(text string) (int64, bool) {
	args := strings.Fields(text)
	if len(args) != 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseAddTask splits "/addtask |Title|URL|Reward" into its fields. The
// first pipe-separated segment is the command token and is discarded.
func parseAddTask(text string) (title, url string, reward decimal.Decimal, err error) {
	segments := strings.Split(text, "|")
	if len(segments) != 4 {
		return "", "", decimal.Zero, errAddTaskFieldCount
	}

	title = strings.TrimSpace(segments[1])
	url = strings.TrimSpace(segments[2])
	if title == "" || url == "" {
		return "", "", decimal.Zero, errAddTaskEmptyField
	}

	reward, err = decimal.NewFromString(strings.TrimSpace(segments[3]))
	if err != nil || !reward.IsPositive() {
		return "", "", decimal.Zero, errAddTaskReward
	}

	return title, url, reward, nil
}

// parseBroadcastText extracts the free-text message from a /broadcast
// command. An empty result means the command carried no message.
func parseBroadcastText(text string) string {
	rest := strings.TrimPrefix(text, "/broadcast")
	return strings.TrimSpace(rest)
}
