package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{"double star crosses separators", "src/components/app.ts", "**/*.ts", true},
		{"double star at root level", "app.ts", "**.ts", true},
		{"single star stays in one segment", "main.go", "*.go", true},
		{"single star does not cross separators", "cmd/main.go", "*.go", false},
		{"question mark matches one char", "a.go", "?.go", true},
		{"question mark needs exactly one char", "ab.go", "?.go", false},
		{"case insensitive", "SRC/App.TS", "src/**/*.ts", false},
		{"case insensitive match", "SRC/x/App.TS", "src/**/*.ts", true},
		{"anchored, not substring", "foobar.go", "bar.go", false},
		{"literal dots are escaped", "maingo", "main.go", false},
		{"exact literal", "package.json", "package.json", true},
		{"nested manifest", "apps/web/package.json", "**/package.json", true},
		{"empty pattern only matches empty path", "main.go", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchGlob(tt.path, tt.pattern))
		})
	}
}

func TestMatchGlob_MalformedPattern(t *testing.T) {
	// An unclosed character class cannot compile; the pattern degenerates
	// to a case-insensitive literal comparison instead of erroring.
	assert.True(t, MatchGlob("[invalid", "[invalid"))
	assert.True(t, MatchGlob("[INVALID", "[invalid"))
	assert.False(t, MatchGlob("something.go", "[invalid"))
}

func TestMatchesAnyFile(t *testing.T) {
	files := []string{"go.mod", "cmd/app/main.go", "internal/db/store.go"}

	assert.True(t, matchesAnyFile("**/*.go", files))
	assert.True(t, matchesAnyFile("go.mod", files))
	assert.False(t, matchesAnyFile("*.ts", files))
	assert.False(t, matchesAnyFile("**/*.py", files))
	assert.False(t, matchesAnyFile("*.go", files)) // no root-level .go file
}
