package strain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/eyestrain/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   models.Metrics
		want Level
	}{
		{
			name: "healthy blinking",
			in:   models.Metrics{BlinksPerMinute: 15, Perclos: 5, AvgBlinkDurationMs: 150},
			want: Low,
		},
		{
			name: "low boundary is inclusive on blink rate",
			in:   models.Metrics{BlinksPerMinute: 12, Perclos: 9.99, AvgBlinkDurationMs: 299},
			want: Low,
		},
		{
			name: "slightly reduced blink rate",
			in:   models.Metrics{BlinksPerMinute: 8, Perclos: 5, AvgBlinkDurationMs: 150},
			want: Mild,
		},
		{
			name: "perclos at 10",
			in:   models.Metrics{BlinksPerMinute: 20, Perclos: 10, AvgBlinkDurationMs: 150},
			want: Mild,
		},
		{
			name: "slow blinks",
			in:   models.Metrics{BlinksPerMinute: 20, Perclos: 5, AvgBlinkDurationMs: 300},
			want: Mild,
		},
		{
			name: "mild wins over high when both match",
			in:   models.Metrics{BlinksPerMinute: 4, Perclos: 15, AvgBlinkDurationMs: 500},
			want: Mild,
		},
		{
			name: "rare blinking",
			in:   models.Metrics{BlinksPerMinute: 7.9, Perclos: 5, AvgBlinkDurationMs: 150},
			want: High,
		},
		{
			name: "eyes mostly closed",
			in:   models.Metrics{BlinksPerMinute: 20, Perclos: 20, AvgBlinkDurationMs: 150},
			want: High,
		},
		{
			name: "long blinks",
			in:   models.Metrics{BlinksPerMinute: 20, Perclos: 5, AvgBlinkDurationMs: 400},
			want: High,
		},
		{
			name: "empty window",
			in:   models.Metrics{},
			want: High,
		},
		{
			name: "no rule matches",
			in: models.Metrics{
				BlinksPerMinute:    math.NaN(),
				Perclos:            math.NaN(),
				AvgBlinkDurationMs: math.NaN(),
			},
			want: Moderate,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, Classify(tc.in))
		})
	}
}

func TestLevelPresentation(t *testing.T) {
	assert.Equal(t, "High", High.String())
	assert.Equal(t, "Level(9)", Level(9).String())
	assert.Equal(t, "#00FF00", Low.Accent())
	assert.Less(t, Mild.Severity(), Moderate.Severity())
	assert.NotEmpty(t, Moderate.Advice())
}

func TestLevelText(t *testing.T) {
	b, err := json.Marshal(map[string]Level{"level": Mild})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"level":"Mild"}`, string(b))

	var out map[string]Level

	assert.NoError(t, json.Unmarshal([]byte(`{"level":"moderate"}`), &out))
	assert.Equal(t, Moderate, out["level"])

	_, err = Parse("severe")
	assert.ErrorIs(t, err, errUnknownLevel)
}
