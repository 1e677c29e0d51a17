package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		feedback string
		want     *int
	}{
		{"plain", "Good structure.\nScore: 7", intPtr(7)},
		{"out of ten", "Score: 8/10 - solid answer", intPtr(8)},
		{"no space", "Score:9", intPtr(9)},
		{"first label wins", "Score: 4\nRevised Score: 6", intPtr(4)},
		{"out of range is not clamped", "Score: 42", intPtr(42)},
		{"no label", "Nice answer, roughly a seven.", nil},
		{"lowercase label", "score: 5", nil},
		{"label without number", "Score: N/A", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.feedback)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func intPtr(v int) *int { return &v }
