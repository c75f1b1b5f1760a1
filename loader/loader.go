package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/decorum/types"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	difficulties []rawDifficulty
	scoring      []*lua.LTable
	allocation   []*lua.LTable
	defaultTier  string
}

// Load reads preset definitions from path, which is either a single .lua
// file or a directory of them, overlays them on the built-in presets,
// validates the result and returns it. Warnings are logged; errors are
// returned. The Lua VM is discarded after loading.
func Load(path string, log zerolog.Logger) (*types.Presets, error) {
	files, err := luaFiles(path)
	if err != nil {
		return nil, err
	}

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range files {
		if err := L.DoFile(f); err != nil {
			return nil, fmt.Errorf("executing %s: %w", filepath.Base(f), err)
		}
	}

	p, warnings, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling presets: %w", err)
	}

	var verr *ValidationError
	if err := validate(p); err != nil {
		verr = err.(*ValidationError)
		warnings = append(warnings, verr.Warnings...)
	}
	for _, w := range warnings {
		log.Warn().Str("presets", path).Msg(w)
	}
	if verr != nil && len(verr.Errors) > 0 {
		return nil, verr
	}

	log.Debug().Str("presets", path).Int("files", len(files)).Strs("tiers", p.Order).Msg("presets loaded")
	return p, nil
}

// luaFiles resolves path into the ordered list of files to execute.
func luaFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets directory %s: %w", path, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", path)
	}

	// presets.lua first, rest alphabetical.
	names = sortedLuaFiles(names)
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(path, n)
	}
	return out, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Preset files must not reseed or draw; generation owns all randomness.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
			tbl.RawSetString("random", lua.LNil)
		}
	}
}
