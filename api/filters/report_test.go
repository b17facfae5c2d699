package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReportCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "full url",
			input:    "https://www.warcraftlogs.com/reports/a1b2C3d4E5f6G7h8",
			expected: "a1b2C3d4E5f6G7h8",
		},
		{
			name:     "url with fight fragment",
			input:    "https://www.warcraftlogs.com/reports/a1b2C3d4E5f6G7h8#fight=12",
			expected: "a1b2C3d4E5f6G7h8",
		},
		{
			name:     "url with trailing path",
			input:    "https://www.warcraftlogs.com/reports/a1b2C3d4E5f6G7h8/summary",
			expected: "a1b2C3d4E5f6G7h8",
		},
		{
			name:     "bare code",
			input:    "a1b2C3d4E5f6G7h8",
			expected: "a1b2C3d4E5f6G7h8",
		},
		{
			name:    "url without a code",
			input:   "https://www.warcraftlogs.com/zones",
			wantErr: true,
		},
		{
			name:    "reports segment without code",
			input:   "https://www.warcraftlogs.com/reports/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := ProcessReportRequest{ReportURL: tt.input}
			code, err := request.ExtractReportCode()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestFightEventsQueryKinds(t *testing.T) {
	query := FightEventsQuery{Types: "cast, damage,,heal"}
	assert.Equal(t, []string{"cast", "damage", "heal"}, query.Kinds())

	empty := FightEventsQuery{}
	assert.Nil(t, empty.Kinds())
}

func TestAggregateRequestPlayerNames(t *testing.T) {
	request := AggregateRequest{
		Groups: map[string][]string{
			"g1": {"A", "B"},
			"g2": {"B", "C"},
		},
	}

	names := request.PlayerNames()
	assert.ElementsMatch(t, []string{"A", "B", "C"}, names)
}
