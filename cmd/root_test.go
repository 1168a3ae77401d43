package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pohlang/plhub/internal/codes"
)

func TestExecute_NoCommand(t *testing.T) {
	rootCmd.SetArgs([]string{})

	assert.Equal(t, codes.NoCommand, Execute())
}

func TestExecute_Version(t *testing.T) {
	rootCmd.SetArgs([]string{"version"})

	assert.Equal(t, codes.OK, Execute())
}

func TestExecute_ListTemplates(t *testing.T) {
	rootCmd.SetArgs([]string{"list", "templates"})

	assert.Equal(t, codes.OK, Execute())
}

func TestExecute_ListUnknownType(t *testing.T) {
	rootCmd.SetArgs([]string{"list", "bogus"})

	assert.Equal(t, codes.Usage, Execute())
}
