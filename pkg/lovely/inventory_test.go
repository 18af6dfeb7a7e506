package lovely_test

import (
	"testing"

	"github.com/arthur-debert/lovely/pkg/config"
	"github.com/arthur-debert/lovely/pkg/lovely"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventory(t *testing.T) {
	mt := newTree(t)
	mt.AddMod(t, "Broken", map[string]string{"lovely.toml": "[[patches]\n"})
	mt.AddMod(t, "Json", map[string]string{
		"lovely.toml": `
[[patches]]
[patches.module]
source = "json.lua"
before = "main.lua"
name = "json"
`,
	})

	rt, err := lovely.New(lovely.Options{Config: &config.Config{ModDir: mt.Dir}, Fs: mt.FS})
	require.NoError(t, err)

	inv := rt.Inventory()
	assert.Equal(t, mt.Dir, inv.ModDir)
	require.Len(t, inv.Mods, 3)

	assert.Equal(t, "Broken", inv.Mods[0].Name)
	assert.True(t, inv.Mods[0].Rejected)
	assert.Empty(t, inv.Mods[0].Manifests)

	assert.Equal(t, "Json", inv.Mods[1].Name)
	assert.Equal(t, "Speed", inv.Mods[2].Name)
	require.Len(t, inv.Mods[2].Manifests, 1)
	assert.Equal(t, "1.0", inv.Mods[2].Manifests[0].Version)
	assert.Equal(t, 1, inv.Mods[2].Manifests[0].Rules)

	require.Len(t, inv.Targets, 1)
	assert.Equal(t, "main.lua", inv.Targets[0].Name)
	assert.Equal(t, []string{
		`Json/lovely.toml: module "json"`,
		`Speed/lovely.toml: pattern "function love.load()"`,
	}, inv.Targets[0].Rules)
}
