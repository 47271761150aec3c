package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LandPlan-App/internal/domain/model"
)

func TestParseDetections_RawArray(t *testing.T) {
	raw := `[{"label": "timber", "box_2d": [100, 200, 400, 600], "confidence": 0.9},
	         {"label": "pond", "box_2d": [10.4, 20.6, 30, 40]}]`

	detections, err := NewDetectionParser().ParseDetections(raw)
	require.NoError(t, err)
	require.Len(t, detections, 2)

	assert.Equal(t, model.Detection{Label: "timber", Box2D: [4]int{100, 200, 400, 600}, Confidence: 0.9}, detections[0])
	assert.Equal(t, [4]int{10, 21, 30, 40}, detections[1].Box2D)
	assert.Equal(t, 1.0, detections[1].Confidence)
}

func TestParseDetections_FencedBlock(t *testing.T) {
	raw := "Here are the regions I found:\n```json\n[\n  {\"label\": \"food plot\", \"box_2d\": [0, 0, 1000, 1000], \"confidence\": 0.55}\n]\n```\nLet me know if you need more."

	detections, err := NewDetectionParser().ParseDetections(raw)
	require.NoError(t, err)
	require.Len(t, detections, 1)
	assert.Equal(t, "food plot", detections[0].Label)
	assert.Equal(t, [4]int{0, 0, 1000, 1000}, detections[0].Box2D)
}

func TestParseDetections_WrappedObject(t *testing.T) {
	raw := `{"detections": [{"label": "brush", "box_2d": [1, 2, 3, 4], "confidence": 0.7}]}`

	detections, err := NewDetectionParser().ParseDetections(raw)
	require.NoError(t, err)
	require.Len(t, detections, 1)
	assert.Equal(t, "brush", detections[0].Label)
}

func TestParseDetections_ClampsAndSkips(t *testing.T) {
	raw := `[
		{"label": "water", "box_2d": [-5, 100, 1004, 200], "confidence": 1.7},
		{"label": "", "box_2d": [1, 2, 3, 4]},
		{"label": "timber", "box_2d": [1, 2, 3]}
	]`

	detections, err := NewDetectionParser().ParseDetections(raw)
	require.NoError(t, err)
	require.Len(t, detections, 1)
	assert.Equal(t, [4]int{0, 100, 1000, 200}, detections[0].Box2D)
	assert.Equal(t, 1.0, detections[0].Confidence)
}

func TestParseDetections_Errors(t *testing.T) {
	parser := NewDetectionParser()

	_, err := parser.ParseDetections("no regions detected")
	assert.ErrorIs(t, err, ErrNoDetections)

	_, err = parser.ParseDetections(`[{"label": "timber", "box_2d": "oops"}]`)
	assert.Error(t, err)

	detections, err := parser.ParseDetections("[]")
	require.NoError(t, err)
	assert.Empty(t, detections)
}
