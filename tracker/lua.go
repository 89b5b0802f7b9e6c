// This file is part of Videochain.
//
// Videochain is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Videochain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Videochain.  If not, see <https://www.gnu.org/licenses/>.

package tracker

import (
	"context"
	"time"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/curated"
	"github.com/videochain/videochain/logger"
	"github.com/videochain/videochain/preset"
	lua "github.com/yuin/gopher-lua"
)

// Error patterns used by the tracker package.
const (
	ScriptError = "tracker: %s: %v"
)

// Timeout is the longest a single method call may run for.
const Timeout = 50 * time.Millisecond

// Lua is a tracker that retrieves values by calling the methods of a Lua
// class.
type Lua struct {
	state    *lua.LState
	class    string
	instance *lua.LTable
	uniforms []string

	// the values returned by Uniforms(). reused every frame
	values []chain.TrackerUniform

	// errors are logged through a limiter so that a broken method doesn't
	// flood the log
	limiter logger.Limiter
}

// NewLua creates a Lua tracker. If isFile is true then script is the path of
// the script, otherwise it is the script itself.
func NewLua(script string, isFile bool, class string, uniforms []string) (*Lua, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// scripts have no access to the package, io or os libraries
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			L.Close()
			return nil, curated.Errorf(ScriptError, class, err)
		}
	}

	// base library functions that read other files
	for _, fn := range []string{"dofile", "loadfile", "require", "module"} {
		L.SetGlobal(fn, lua.LNil)
	}

	var err error
	if isFile {
		err = L.DoFile(script)
	} else {
		err = L.DoString(script)
	}
	if err != nil {
		L.Close()
		return nil, curated.Errorf(ScriptError, class, err)
	}

	instance, err := instantiate(L, class)
	if err != nil {
		L.Close()
		return nil, curated.Errorf(ScriptError, class, err)
	}

	for _, u := range uniforms {
		if _, ok := instance.RawGetString(u).(*lua.LFunction); !ok {
			if mt, ok := L.GetMetatable(instance).(*lua.LTable); !ok || mt.RawGetString("__index") == lua.LNil {
				L.Close()
				return nil, curated.Errorf(ScriptError, class, curated.Errorf("no method named %s", u))
			}
		}
	}

	trk := &Lua{
		state:    L,
		class:    class,
		instance: instance,
		uniforms: uniforms,
		values:   make([]chain.TrackerUniform, len(uniforms)),
		limiter:  logger.Limiter{Allowance: 10},
	}

	logger.Logf(logger.Allow, "tracker", "%s: %d values", class, len(uniforms))

	return trk, nil
}

// FromPreset creates the tracker declared by a preset. A nil declaration
// results in chain.NullTracker.
func FromPreset(spec *preset.Tracker) (chain.Tracker, error) {
	if spec == nil {
		return chain.NullTracker{}, nil
	}
	trk, err := NewLua(spec.Script, true, spec.Class, spec.Uniforms)
	if err != nil {
		return nil, err
	}
	return trk, nil
}

// instantiate returns the table for the named class. if the class is a
// function it is called and the returned table used.
func instantiate(L *lua.LState, class string) (*lua.LTable, error) {
	switch v := L.GetGlobal(class).(type) {
	case *lua.LTable:
		return v, nil
	case *lua.LFunction:
		err := L.CallByParam(lua.P{Fn: v, NRet: 1, Protect: true})
		if err != nil {
			return nil, err
		}
		ret := L.Get(-1)
		L.Pop(1)
		if t, ok := ret.(*lua.LTable); ok {
			return t, nil
		}
		return nil, curated.Errorf("constructor returned %s not a table", ret.Type())
	case *lua.LNilType:
		return nil, curated.Errorf("class not defined")
	default:
		return nil, curated.Errorf("class is a %s", v.Type())
	}
}

// Uniforms implements the chain.Tracker interface.
func (trk *Lua) Uniforms(frame uint) []chain.TrackerUniform {
	if trk.state == nil {
		return nil
	}

	for i, u := range trk.uniforms {
		trk.values[i] = chain.TrackerUniform{Name: u}

		v, err := trk.call(u, frame)
		if err != nil {
			logger.Logf(&trk.limiter, "tracker", "%s:%s: %v", trk.class, u, err)
			continue
		}
		trk.values[i].Value = v
	}

	return trk.values
}

func (trk *Lua) call(method string, frame uint) (float32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	trk.state.SetContext(ctx)
	defer trk.state.RemoveContext()

	fn := trk.state.GetField(trk.instance, method)
	if fn.Type() != lua.LTFunction {
		return 0, curated.Errorf("not a method")
	}

	err := trk.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, trk.instance, lua.LNumber(frame))
	if err != nil {
		return 0, err
	}

	ret := trk.state.Get(-1)
	trk.state.Pop(1)

	switch v := ret.(type) {
	case lua.LNumber:
		return float32(v), nil
	case lua.LBool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return 0, curated.Errorf("returned %s not a number", ret.Type())
}

// Destroy implements the chain.Tracker interface.
func (trk *Lua) Destroy() {
	if trk.state == nil {
		return
	}
	trk.state.Close()
	trk.state = nil
	logger.Logf(logger.Allow, "tracker", "%s: closed", trk.class)
}
