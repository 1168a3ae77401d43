package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Success", Describe(OK))
	assert.Equal(t, "No command given", Describe(NoCommand))
	assert.Equal(t, "Interrupted", Describe(Interrupt))
	assert.Equal(t, "Unknown error", Describe(99))
}
