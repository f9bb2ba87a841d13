package states

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerlane/dealrisk/pkg/model"
)

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("CA"))
	assert.True(t, IsSupported("NY"))
	assert.False(t, IsSupported("WY"))
}

func TestSupportedCodes_Sorted(t *testing.T) {
	assert.Equal(t, []string{"CA", "FL", "NY", "TX"}, SupportedCodes())
}

func TestGetInfo(t *testing.T) {
	info, ok := GetInfo("TX")
	require.True(t, ok)
	assert.Equal(t, "Texas", info.HumanName)

	_, ok = GetInfo("ZZ")
	assert.False(t, ok)
}

func TestList_SortedByCode(t *testing.T) {
	list := List()
	require.Len(t, list, 4)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Code, list[i].Code)
	}
}

func TestCreateRules_UnsupportedState(t *testing.T) {
	rs, err := CreateRules("ZZ")
	require.Nil(t, rs)
	var unsupported *ErrUnsupportedState
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "ZZ", unsupported.Code)
}

func TestCreateRules_SupportedStateIsDeterministicAndFresh(t *testing.T) {
	a, err := CreateRules("CA")
	require.NoError(t, err)
	b, err := CreateRules("CA")
	require.NoError(t, err)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID(), b[i].ID())
		assert.NotSame(t, a[i], b[i])
	}
}

func TestCreateMultiStateRules(t *testing.T) {
	all, unsupported := CreateMultiStateRules([]string{"CA", "ZZ", "TX"})
	assert.Equal(t, []string{"ZZ"}, unsupported)
	assert.NotEmpty(t, all)
}

func TestUnsupportedStateFlag(t *testing.T) {
	flag := UnsupportedStateFlag("ZZ")
	assert.Equal(t, "UNSUPPORTED_STATE", flag.Code)
	assert.Equal(t, model.SeverityMedium, flag.Severity)
}
