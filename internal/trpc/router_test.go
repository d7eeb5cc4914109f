package trpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdentifierStripsRouterSuffix(t *testing.T) {
	assert.Equal(t, "post", normalizeIdentifier("postRouter"))
	assert.Equal(t, "post", normalizeIdentifier("PostRouter"))
	assert.Equal(t, "", normalizeIdentifier("Router"))
	assert.Equal(t, "", normalizeIdentifier(""))
}

func TestNormalizeRouterNameFromDeclaredIdentifier(t *testing.T) {
	assert.Equal(t, "post", normalizeRouterName("postRouter", "server/routers/anything.ts"))
}

func TestNormalizeRouterNameFallsBackToFileBasename(t *testing.T) {
	assert.Equal(t, "post", normalizeRouterName("", "server/routers/postRouter.ts"))
}

func TestNormalizeRouterNameFallsBackToDirectoryName(t *testing.T) {
	assert.Equal(t, "post", normalizeRouterName("", "server/routers/postRouter/index.ts"))
}

func TestNormalizeRouterNameFallsBackToDeclaredVerbatim(t *testing.T) {
	assert.Equal(t, "Router", normalizeRouterName("Router", "Router/Router.ts"))
}
