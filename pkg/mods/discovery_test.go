package mods_test

import (
	"testing"

	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/mods"
	"github.com/arthur-debert/lovely/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modNames(ms []*mods.Mod) []string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}
	return names
}

func TestDiscoverOrdering(t *testing.T) {
	tree := testutil.NewModTree(t)
	tree.AddMod(t, "beta", map[string]string{"lovely.toml": ""})
	tree.AddMod(t, "Alpha", map[string]string{"lovely.toml": ""})
	tree.AddMod(t, "gamma", map[string]string{"main.lua": ""})
	tree.AddArchive(t, "zed.zip", map[string]string{"lovely.toml": ""})
	tree.AddArchive(t, "Archived.zip", map[string]string{"lovely.toml": ""})

	found, err := mods.Discover(tree.FS, tree.Dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Alpha", "beta", "gamma", "Archived.zip", "zed.zip"}, modNames(found))
	for i, m := range found {
		assert.Equal(t, i, m.Index)
	}
	assert.False(t, found[0].Archive)
	assert.True(t, found[3].Archive)
	assert.Empty(t, found[2].Manifests, "mods without manifests are still discovered")
}

func TestDiscoverSkips(t *testing.T) {
	tree := testutil.NewModTree(t)
	tree.AddMod(t, "kept", map[string]string{"lovely.toml": ""})
	tree.AddMod(t, "ignored", map[string]string{"lovely.toml": "", ".lovelyignore": ""})
	tree.AddMod(t, "listed", map[string]string{"lovely.toml": ""})
	tree.AddMod(t, ".hidden", map[string]string{"lovely.toml": ""})
	tree.AddArchive(t, "listed.zip", map[string]string{"lovely.toml": ""})
	tree.AddFile(t, "lovely/blacklist.txt", "# comment\n\nlisted\nlisted.zip\n")
	tree.AddFile(t, "lovely/dump/main.lua", "")
	tree.AddFile(t, "notes.txt", "")

	found, err := mods.Discover(tree.FS, tree.Dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, modNames(found))
}

func TestDiscoverManifestOrder(t *testing.T) {
	tree := testutil.NewModTree(t)
	tree.AddMod(t, "mod", map[string]string{
		"lovely.toml":          "",
		"lovely/b.toml":        "",
		"lovely/sub/A.toml":    "",
		"lovely/c.toml":        "",
		"lovely/readme.md":     "",
		"lovely/nested/z.toml": "",
	})

	found, err := mods.Discover(tree.FS, tree.Dir)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, []string{
		"lovely.toml",
		"lovely/sub/A.toml",
		"lovely/b.toml",
		"lovely/c.toml",
		"lovely/nested/z.toml",
	}, found[0].Manifests)
}

func TestDiscoverMissingDir(t *testing.T) {
	tree := testutil.NewModTree(t)

	_, err := mods.Discover(tree.FS, "/nowhere")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrModDir))

	tree.AddFile(t, "file", "")
	_, err = mods.Discover(tree.FS, tree.Dir+"/file")
	assert.True(t, errors.IsErrorCode(err, errors.ErrModDir))
}

func TestDirModReadSource(t *testing.T) {
	tree := testutil.NewModTree(t)
	tree.AddMod(t, "mod", map[string]string{"lovely.toml": "", "libs/a.lua": "A"})
	tree.AddFile(t, "secret.lua", "outside")

	found, err := mods.Discover(tree.FS, tree.Dir)
	require.NoError(t, err)
	mod := found[0]

	data, err := mod.ReadSource("libs/a.lua")
	require.NoError(t, err)
	assert.Equal(t, "A", string(data))

	_, err = mod.ReadSource("missing.lua")
	assert.Error(t, err)

	_, err = mod.ReadSource("../secret.lua")
	assert.Error(t, err, "sources cannot escape the mod root")
}
