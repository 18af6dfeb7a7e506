// Package luahost is a Load Intercept for gopher-lua states.
//
// Every chunk the host loads from the game's sources goes through the
// injector first, require resolves game modules through the same path, and
// module rules land in package.preload (or package.loaded for load_now).
//
//	L := lua.NewState()
//	h := luahost.New(L, rt, afero.NewBasePathFs(afero.NewOsFs(), gameDir))
//	h.Install()
//	err := h.DoFile("main.lua")
package luahost
