package jsonutils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToJSON(t *testing.T) {
	got := ToJSON(map[string]string{"Good Buy?": "Maybe"})
	assert.Equal(t, "{\n  \"Good Buy?\": \"Maybe\"\n}", got)
}

func TestToJSONUnsupported(t *testing.T) {
	assert.Equal(t, "", ToJSON(math.NaN()))
}
