package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260829-go-pkg-subst/internal/config"
	"github.com/lwmacct/260829-go-pkg-subst/pkg/subst"
)

func TestRender_Vars(t *testing.T) {
	cfg := config.RenderConfig{
		Vars:  map[string]string{"region": "cn-north"},
		NoEnv: true,
	}

	got, err := Render(cfg, `endpoint=${region}.example.com port=${port:-443}`)
	require.NoError(t, err)
	assert.Equal(t, "endpoint=cn-north.example.com port=443", got)
}

func TestRender_VarsOverrideEnv(t *testing.T) {
	t.Setenv("RENDER_TEST_REGION", "env-region")

	cfg := config.RenderConfig{
		Vars: map[string]string{"RENDER_TEST_REGION": "var-region"},
	}

	got, err := Render(cfg, `${RENDER_TEST_REGION}`)
	require.NoError(t, err)
	assert.Equal(t, "var-region", got, "explicit vars win over environment")
}

func TestRender_NoEnv(t *testing.T) {
	t.Setenv("RENDER_TEST_HIDDEN", "from-env")

	cfg := config.RenderConfig{NoEnv: true}

	got, err := Render(cfg, `${RENDER_TEST_HIDDEN}`)
	require.NoError(t, err)
	assert.Equal(t, `${RENDER_TEST_HIDDEN}`, got)
}

func TestRender_CycleError(t *testing.T) {
	cfg := config.RenderConfig{
		Vars:  map[string]string{"A": `${B}`, "B": `${A}`},
		NoEnv: true,
	}

	_, err := Render(cfg, `${A}`)
	require.Error(t, err)

	var cycleErr *subst.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"A", "B", "A"}, cycleErr.Chain)
}

func TestRender_MaxDepth(t *testing.T) {
	cfg := config.RenderConfig{
		Vars:     map[string]string{"A": `deep ${B}`, "B": `deeper ${C}`, "C": "bottom"},
		NoEnv:    true,
		MaxDepth: 1,
	}

	_, err := Render(cfg, `${A}`)
	require.ErrorIs(t, err, subst.ErrDepthExceeded)
}
