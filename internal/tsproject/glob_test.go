package tsproject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlobDoubleStar(t *testing.T) {
	assert.True(t, MatchGlob("**/*.ts", "app/api/users/route.ts"))
	assert.True(t, MatchGlob("**/*.ts", "route.ts"))
	assert.False(t, MatchGlob("**/*.ts", "app/api/users/route.tsx"))
}

func TestMatchGlobBraceGroup(t *testing.T) {
	assert.True(t, MatchGlob("**/route.{ts,js}", "app/api/route.ts"))
	assert.True(t, MatchGlob("**/route.{ts,js}", "app/api/route.js"))
	assert.False(t, MatchGlob("**/route.{ts,js}", "app/api/route.tsx"))
}

func TestMatchGlobExactPath(t *testing.T) {
	assert.True(t, MatchGlob("pages/api/index.ts", "pages/api/index.ts"))
	assert.False(t, MatchGlob("pages/api/index.ts", "pages/api/other.ts"))
}

func TestMatchGlobDoubleStarMatchesZeroComponents(t *testing.T) {
	assert.True(t, MatchGlob("**/index.ts", "index.ts"))
}

func TestMatchGlobSingleWildcard(t *testing.T) {
	assert.True(t, MatchGlob("pages/api/*.ts", "pages/api/ping.ts"))
	assert.False(t, MatchGlob("pages/api/*.ts", "pages/api/nested/ping.ts"))
}
