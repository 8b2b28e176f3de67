//go:build js && wasm

package main

import (
	"syscall/js"

	"gochip8/pkg/config"
)

// main registers newChip8(options) on the global object and blocks. Each
// call returns an object whose methods drive its own emulator.
func main() {
	logger := config.CreateLogger(false, true)

	constructor := js.FuncOf(func(this js.Value, args []js.Value) any {
		var opts handleOptions
		if len(args) > 0 && args[0].Type() == js.TypeObject {
			opts = optionsFromJS(args[0])
		}
		return newHandle(opts, logger).export()
	})
	js.Global().Set("newChip8", constructor)

	select {}
}

func optionsFromJS(v js.Value) handleOptions {
	var opts handleOptions
	if legacy := v.Get("legacy"); legacy.Type() == js.TypeBoolean {
		opts.Legacy = legacy.Bool()
	}
	if seed := v.Get("seed"); seed.Type() == js.TypeNumber {
		opts.Seed = uint64(seed.Int())
		opts.Seeded = true
	}
	if hz := v.Get("clockHz"); hz.Type() == js.TypeNumber {
		opts.ClockHz = hz.Int()
	}
	return opts
}

func argInt(args []js.Value, i int) int {
	if i >= len(args) || args[i].Type() != js.TypeNumber {
		return -1
	}
	return args[i].Int()
}

func toUint8Array(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

// export builds the JS object for h. Calling release frees the callbacks;
// the object must not be used afterwards.
func (h *handle) export() js.Value {
	obj := js.Global().Get("Object").New()
	var funcs []js.Func
	bind := func(name string, fn func(args []js.Value) any) {
		f := js.FuncOf(func(this js.Value, args []js.Value) any {
			return fn(args)
		})
		funcs = append(funcs, f)
		obj.Set(name, f)
	}

	bind("reset", func([]js.Value) any {
		h.emu.Reset()
		return nil
	})
	bind("loadProgram", func(args []js.Value) any {
		if len(args) == 0 || args[0].Type() != js.TypeObject {
			return "loadProgram: expected a Uint8Array"
		}
		buf := make([]byte, args[0].Get("length").Int())
		js.CopyBytesToGo(buf, args[0])
		if err := h.emu.LoadProgram(buf); err != nil {
			return err.Error()
		}
		return nil
	})
	bind("executeCycle", func([]js.Value) any {
		h.emu.ExecuteCycle()
		return nil
	})
	bind("decrementTimers", func([]js.Value) any {
		h.emu.DecrementTimers()
		return nil
	})
	bind("advance", func(args []js.Value) any {
		if len(args) == 0 || args[0].Type() != js.TypeNumber {
			return 0
		}
		return h.advance(args[0].Float())
	})
	bind("keyDown", func(args []js.Value) any {
		return h.keyDown(argInt(args, 0))
	})
	bind("keyUp", func(args []js.Value) any {
		return h.keyUp(argInt(args, 0))
	})
	bind("getMemory", func([]js.Value) any {
		return toUint8Array(h.memory())
	})
	bind("getDisplay", func([]js.Value) any {
		return toUint8Array(h.display())
	})
	bind("getRegisterV", func([]js.Value) any {
		return toUint8Array(h.registerV())
	})
	bind("getRegisterI", func([]js.Value) any {
		return int(h.emu.RegisterI())
	})
	bind("getRegisterPC", func([]js.Value) any {
		return int(h.emu.RegisterPC())
	})
	bind("getStackPointer", func([]js.Value) any {
		return int(h.emu.StackPointer())
	})
	bind("getDelayTimer", func([]js.Value) any {
		return int(h.emu.DelayTimer())
	})
	bind("soundActive", func([]js.Value) any {
		return h.emu.SoundActive()
	})
	bind("isWaitingForKey", func([]js.Value) any {
		return h.emu.IsWaitingForKey()
	})
	bind("getFault", func([]js.Value) any {
		if f := h.fault(); f != nil {
			return f
		}
		return nil
	})
	bind("release", func([]js.Value) any {
		for _, f := range funcs {
			f.Release()
		}
		return nil
	})
	return obj
}
