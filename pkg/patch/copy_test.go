package patch_test

import (
	"fmt"
	"testing"

	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/patch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource map[string]string

func (m mapSource) ReadSource(rel string) ([]byte, error) {
	s, ok := m[rel]
	if !ok {
		return nil, fmt.Errorf("open %s: file does not exist", rel)
	}
	return []byte(s), nil
}

func TestCopyRuleAppend(t *testing.T) {
	src := mapSource{"a.lua": "A\n", "b.lua": "B\n"}
	rule := patch.CopyRule{Position: patch.CopyAppend, Sources: []string{"a.lua", "b.lua"}}

	got, res, err := rule.Apply("main\n", src)
	require.NoError(t, err)
	assert.Equal(t, "main\nA\nB\n", got)
	assert.Equal(t, 2, res.Matches)
}

func TestCopyRulePrepend(t *testing.T) {
	src := mapSource{"a.lua": "A\n", "b.lua": "B"}
	rule := patch.CopyRule{Position: patch.CopyPrepend, Sources: []string{"a.lua", "b.lua"}}

	got, _, err := rule.Apply("main\n", src)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\nmain\n", got)
}

func TestCopyRuleAppendToUnterminatedBuffer(t *testing.T) {
	src := mapSource{"a.lua": "A\n"}
	rule := patch.CopyRule{Position: patch.CopyAppend, Sources: []string{"a.lua"}}

	got, _, err := rule.Apply("main", src)
	require.NoError(t, err)
	assert.Equal(t, "main\nA\n", got)
}

func TestCopyRuleMissingSource(t *testing.T) {
	src := mapSource{"a.lua": "A\n"}
	rule := patch.CopyRule{Position: patch.CopyAppend, Sources: []string{"a.lua", "missing.lua"}}

	got, _, err := rule.Apply("main\n", src)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCopySource))
	assert.Equal(t, "missing.lua", errors.GetErrorDetails(err)["source"])
	assert.Equal(t, "main\n", got, "nothing is spliced when a source fails")
}

func TestCopyRuleEmptySources(t *testing.T) {
	rule := patch.CopyRule{Position: patch.CopyAppend, Sources: []string{"empty.lua"}}
	got, _, err := rule.Apply("main", mapSource{"empty.lua": ""})
	require.NoError(t, err)
	assert.Equal(t, "main", got)
}
