package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseStartReferrer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want *int64
	}{
		{name: "no argument", text: "/start", want: nil},
		{name: "numeric referrer", text: "/start 42", want: ref(42)},
		{name: "non-numeric referrer ignored", text: "/start promo", want: nil},
		{name: "negative referrer ignored", text: "/start -5", want: nil},
		{name: "extra arguments use the first", text: "/start 42 99", want: ref(42)},
		{name: "extra whitespace", text: "/start   42", want: ref(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseStartReferrer(tt.text)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("parseStartReferrer(%q) = %d, want nil", tt.text, *got)
			case tt.want != nil && got == nil:
				t.Errorf("parseStartReferrer(%q) = nil, want %d", tt.text, *tt.want)
			case tt.want != nil && got != nil && *got != *tt.want:
				t.Errorf("parseStartReferrer(%q) = %d, want %d", tt.text, *got, *tt.want)
			}
		})
	}
}

func TestParseDoneTaskID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		wantID int64
		wantOK bool
	}{
		{name: "valid id", text: "/done 7", wantID: 7, wantOK: true},
		{name: "missing id", text: "/done", wantOK: false},
		{name: "non-numeric id", text: "/done seven", wantOK: false},
		{name: "too many arguments", text: "/done 7 8", wantOK: false},
		{name: "negative id parses", text: "/done -1", wantID: -1, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := parseDoneTaskID(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("parseDoneTaskID(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && id != tt.wantID {
				t.Errorf("parseDoneTaskID(%q) = %d, want %d", tt.text, id, tt.wantID)
			}
		})
	}
}

func TestParseAddTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		wantTitle  string
		wantURL    string
		wantReward string
		wantErr    error
	}{
		{
			name:       "valid",
			text:       "/addtask |Survey|http://x.test|2.50",
			wantTitle:  "Survey",
			wantURL:    "http://x.test",
			wantReward: "2.50",
		},
		{
			name:       "fields are trimmed",
			text:       "/addtask | Watch Video | https://example.com/v | 0.10 ",
			wantTitle:  "Watch Video",
			wantURL:    "https://example.com/v",
			wantReward: "0.10",
		},
		{name: "too few fields", text: "/addtask |Survey|http://x.test", wantErr: errAddTaskFieldCount},
		{name: "too many fields", text: "/addtask |a|b|c|d", wantErr: errAddTaskFieldCount},
		{name: "no pipes at all", text: "/addtask Survey http://x.test 2.50", wantErr: errAddTaskFieldCount},
		{name: "empty title", text: "/addtask ||http://x.test|2.50", wantErr: errAddTaskEmptyField},
		{name: "non-numeric reward", text: "/addtask |Survey|http://x.test|lots", wantErr: errAddTaskReward},
		{name: "zero reward", text: "/addtask |Survey|http://x.test|0", wantErr: errAddTaskReward},
		{name: "negative reward", text: "/addtask |Survey|http://x.test|-2", wantErr: errAddTaskReward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, url, reward, err := parseAddTask(tt.text)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("parseAddTask(%q) err = %v, want %v", tt.text, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAddTask(%q) failed: %v", tt.text, err)
			}
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if url != tt.wantURL {
				t.Errorf("url = %q, want %q", url, tt.wantURL)
			}
			if want := decimal.RequireFromString(tt.wantReward); !reward.Equal(want) {
				t.Errorf("reward = %s, want %s", reward, want)
			}
		})
	}
}

func TestParseBroadcastText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "simple message", text: "/broadcast Hello", want: "Hello"},
		{name: "empty message", text: "/broadcast", want: ""},
		{name: "whitespace only", text: "/broadcast    ", want: ""},
		{name: "multi-word message", text: "/broadcast New tasks are live!", want: "New tasks are live!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseBroadcastText(tt.text); got != tt.want {
				t.Errorf("parseBroadcastText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func ref(id int64) *int64 { return &id }
