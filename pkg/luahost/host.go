package luahost

import (
	"bytes"
	"path"
	"strings"

	"github.com/arthur-debert/lovely/internal/version"
	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/logging"
	"github.com/arthur-debert/lovely/pkg/lovely"
	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"
)

// MetadataModule is the name the injector's own module is required by.
const MetadataModule = "lovely"

// Host routes a Lua state's chunk loading through the injector.
type Host struct {
	L      *lua.LState
	fs     afero.Fs
	rt     *lovely.Runtime
	loader *lovely.Loader
}

// New binds L to rt. Game sources are read from fs, with paths relative to
// the game root.
func New(L *lua.LState, rt *lovely.Runtime, fs afero.Fs) *Host {
	h := &Host{L: L, fs: fs, rt: rt}
	h.loader = rt.NewLoader(h)
	return h
}

// Install registers the metadata module and puts the patching searcher
// right after package.preload, ahead of the stock file searcher.
func (h *Host) Install() {
	h.L.PreloadModule(MetadataModule, h.metadataLoader)

	loaders, ok := h.L.GetField(h.L.GetGlobal("package"), "loaders").(*lua.LTable)
	if !ok {
		logger := logging.GetLogger("luahost")
		logger.Warn().Msg("package.loaders missing, require will not be patched")
		return
	}
	loaders.Insert(2, h.L.NewFunction(h.searcher))
}

// Load compiles src under chunk name after patching it.
func (h *Host) Load(name string, src []byte) (*lua.LFunction, error) {
	out, _ := h.loader.LoadBuffer(name, src, "t")
	return h.L.Load(bytes.NewReader(out), name)
}

// DoFile loads and runs a game source file.
func (h *Host) DoFile(rel string) error {
	src, err := afero.ReadFile(h.fs, rel)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "failed to read %s", rel)
	}
	fn, err := h.Load("@"+rel, src)
	if err != nil {
		return err
	}
	h.L.Push(fn)
	return h.L.PCall(0, lua.MultRet, nil)
}

// PreloadModule makes src require-able as name. With loadNow it is run
// right away and its result is cached in package.loaded.
func (h *Host) PreloadModule(name, chunkName string, src []byte, loadNow bool) error {
	L := h.L
	fn, err := L.Load(bytes.NewReader(src), chunkName)
	if err != nil {
		return err
	}

	pkg := L.GetGlobal("package")
	if !loadNow {
		L.SetField(L.GetField(pkg, "preload"), name, fn)
		return nil
	}

	L.Push(fn)
	L.Push(lua.LString(name))
	if err := L.PCall(1, 1, nil); err != nil {
		return err
	}
	result := L.Get(-1)
	L.Pop(1)
	if result == lua.LNil {
		result = lua.LTrue
	}
	L.SetField(L.GetField(pkg, "loaded"), name, result)
	return nil
}

// searcher resolves module names against the game sources: a.b tries
// a/b.lua then a/b/init.lua.
func (h *Host) searcher(L *lua.LState) int {
	name := L.CheckString(1)
	base := strings.ReplaceAll(name, ".", "/")

	var tried strings.Builder
	for _, candidate := range []string{base + ".lua", path.Join(base, "init.lua")} {
		src, err := afero.ReadFile(h.fs, candidate)
		if err != nil {
			tried.WriteString("\n\tno file '" + candidate + "'")
			continue
		}
		fn, err := h.Load("@"+candidate, src)
		if err != nil {
			L.RaiseError("error loading module '%s' from file '%s':\n\t%s", name, candidate, err.Error())
			return 0
		}
		L.Push(fn)
		return 1
	}
	L.Push(lua.LString(tried.String()))
	return 1
}

func (h *Host) metadataLoader(L *lua.LState) int {
	mod := L.NewTable()
	L.SetField(mod, "mod_dir", lua.LString(h.rt.Config().ModDir))
	L.SetField(mod, "version", lua.LString(version.Version))
	L.SetField(mod, "repo", lua.LString(version.Repo))
	L.Push(mod)
	return 1
}
