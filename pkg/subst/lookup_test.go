package subst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260829-go-pkg-subst/pkg/subst"
)

func TestMap(t *testing.T) {
	lookup := subst.Map(map[string]string{"set": "value", "empty": ""})

	got, ok := lookup("set")
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	got, ok = lookup("empty")
	assert.True(t, ok, "empty value is set, not absent")
	assert.Empty(t, got)

	_, ok = lookup("missing")
	assert.False(t, ok)

	_, ok = subst.Map(nil)("any")
	assert.False(t, ok)
}

func TestChain(t *testing.T) {
	first := subst.Map(map[string]string{"a": "first"})
	second := subst.Map(map[string]string{"a": "second", "b": "second"})

	lookup := subst.Chain(nil, first, second)

	got, ok := lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "first", got, "first hit wins")

	got, ok = lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "second", got)

	_, ok = lookup("c")
	assert.False(t, ok)

	_, ok = subst.Chain()("a")
	assert.False(t, ok)
}

func TestEnv(t *testing.T) {
	t.Setenv("SUBST_ENV_SET", "env-value")
	t.Setenv("SUBST_ENV_EMPTY", "")

	lookup := subst.Env()

	got, ok := lookup("SUBST_ENV_SET")
	assert.True(t, ok)
	assert.Equal(t, "env-value", got)

	got, ok = lookup("SUBST_ENV_EMPTY")
	assert.True(t, ok)
	assert.Empty(t, got)

	_, ok = lookup("SUBST_ENV_DEFINITELY_MISSING")
	assert.False(t, ok)
}

func TestExpand(t *testing.T) {
	t.Setenv("SUBST_EXPAND_KEY", "sk-12345")

	got, err := subst.Expand(`key=${SUBST_EXPAND_KEY} model=${SUBST_EXPAND_MODEL:-gpt-4}`)
	require.NoError(t, err)
	assert.Equal(t, "key=sk-12345 model=gpt-4", got)
}
