package manifest

import (
	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/logging"
	"github.com/arthur-debert/lovely/pkg/mods"
)

// LoadMod parses every manifest file of mod in order. If any file cannot be
// read or parsed the mod contributes nothing and the error is returned.
func LoadMod(mod *mods.Mod) ([]*Manifest, error) {
	var out []*Manifest
	for _, file := range mod.Manifests {
		data, err := mod.ReadSource(file)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestRead, "failed to read manifest").
				WithDetail("mod", mod.Name).
				WithDetail("file", file)
		}
		m, err := Parse(data, file)
		if err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err), "mod %s rejected", mod.Name).
				WithDetail("mod", mod.Name).
				WithDetail("file", file)
		}
		m.Mod = mod.Name
		m.Source = mod
		out = append(out, m)
	}
	return out, nil
}

// LoadAll parses the manifests of every mod, in discovery order, and builds
// the Registry. Rejected mods are logged and skipped.
func LoadAll(all []*mods.Mod) *Registry {
	logger := logging.GetLogger("manifest.load")

	var manifests []*Manifest
	index := 0
	for _, mod := range all {
		ms, err := LoadMod(mod)
		if err != nil {
			logger.Error().
				Err(err).
				Str("mod", mod.Name).
				Msg("Failed to load mod manifests, the mod contributes no patches")
			continue
		}
		for _, m := range ms {
			m.Index = index
			index++
			manifests = append(manifests, m)
		}
	}

	return NewRegistry(manifests)
}
