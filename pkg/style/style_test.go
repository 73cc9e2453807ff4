package style

import (
	"testing"

	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestHelpersKeepText(t *testing.T) {
	assert.Contains(t, Bold("Hello"), "Hello")
	assert.Contains(t, Indent("Hello", 2), "    Hello")
}

func TestKindStyle(t *testing.T) {
	assert.Equal(t, CopyStyle.Render("x"), KindStyle(types.KindCopy).Render("x"))
	assert.Equal(t, SymlinkStyle.Render("x"), KindStyle(types.KindSymlink).Render("x"))
}

func TestBadge(t *testing.T) {
	for _, st := range types.Statuses {
		o := types.Outcome{Status: st, DryRun: true}
		assert.Contains(t, Badge(o), "would-"+string(st))
		assert.NotEmpty(t, Indicator(st))
	}
}
