package mods_test

import (
	"testing"

	"github.com/arthur-debert/lovely/pkg/mods"
	"github.com/arthur-debert/lovely/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveNestedRoot(t *testing.T) {
	tree := testutil.NewModTree(t)
	tree.AddArchive(t, "nested.zip", map[string]string{
		"Nested-1.0/README.md":          "hi",
		"Nested-1.0/lovely/patch.toml":  "x",
		"Nested-1.0/lovely/other.toml":  "y",
		"Nested-1.0/libs/helper.lua":    "return 1",
		"Nested-1.0/assets/readme.toml": "",
	})

	found, err := mods.Discover(tree.FS, tree.Dir)
	require.NoError(t, err)
	require.Len(t, found, 1)
	mod := found[0]
	t.Cleanup(func() { _ = mod.Close() })

	assert.True(t, mod.Archive)
	assert.Equal(t, []string{"lovely/other.toml", "lovely/patch.toml"}, mod.Manifests)

	data, err := mod.ReadSource("libs/helper.lua")
	require.NoError(t, err)
	assert.Equal(t, "return 1", string(data))

	data, err = mod.ReadSource("lovely/patch.toml")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestArchiveTopLevelRoot(t *testing.T) {
	tree := testutil.NewModTree(t)
	tree.AddArchive(t, "flat.zip", map[string]string{
		"lovely.toml": "top",
		"main.lua":    "print(1)",
	})

	found, err := mods.Discover(tree.FS, tree.Dir)
	require.NoError(t, err)
	require.Len(t, found, 1)

	assert.Equal(t, []string{"lovely.toml"}, found[0].Manifests)
	data, err := found[0].ReadSource("main.lua")
	require.NoError(t, err)
	assert.Equal(t, "print(1)", string(data))
}

func TestArchiveWithoutRootIsSkipped(t *testing.T) {
	tree := testutil.NewModTree(t)
	tree.AddArchive(t, "plain.zip", map[string]string{"main.lua": ""})
	tree.AddFile(t, "broken.zip", "not a zip")
	tree.AddMod(t, "ok", map[string]string{"lovely.toml": ""})

	found, err := mods.Discover(tree.FS, tree.Dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, modNames(found))
}
