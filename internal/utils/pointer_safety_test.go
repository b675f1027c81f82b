package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-legal-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestNilIfEmpty(t *testing.T) {
	require.Nil(t, utils.NilIfEmpty(""))
	require.Nil(t, utils.NilIfEmpty("   "))
	require.Equal(t, "x", utils.Value(utils.NilIfEmpty("x")))
}

func TestClonePtr(t *testing.T) {
	require.Nil(t, utils.ClonePtr[string](nil))

	orig := utils.Ptr("city-1")
	c := utils.ClonePtr(orig)
	require.Equal(t, *orig, *c)
	*c = "city-2"
	require.Equal(t, "city-1", *orig)
}
