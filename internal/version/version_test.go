package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionString(t *testing.T) {
	v := Version{MajorNumber: 1, MinorNumber: 12, PatchNumber: 3}
	assert.Equal(t, "1.12.3", v.String())
}
