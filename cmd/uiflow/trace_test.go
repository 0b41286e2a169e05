package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/uiflow/internal/config"
	"github.com/dshills/uiflow/internal/input"
	"github.com/dshills/uiflow/internal/input/key"
	"github.com/dshills/uiflow/internal/ui"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestTraceRun_DoubleClick(t *testing.T) {
	path := writeScript(t, `
size: [80, 24]
samples:
  - {type: pointer-down, x: 5, y: 4}
  - {type: pointer-up, x: 5, y: 4}
  - {type: pointer-down, x: 5, y: 4}
  - {type: pointer-up, x: 5, y: 4}
  - {type: key-down, key: Tab}
  - {type: command, command: save}
`)
	var out bytes.Buffer
	require.NoError(t, traceRun(&out, path, "", config.Default(), true))

	got := out.String()
	assert.Contains(t, got, "#1 pointer-down pointer=0 at (5,4) button=primary\n")
	assert.Contains(t, got, "node=ok target=ok")
	assert.Contains(t, got, "status: ok clicked x1\n")
	assert.Contains(t, got, "status: ok clicked x2\n")
	assert.Contains(t, got, "status: buttons: default action for ok\n")
	assert.Contains(t, got, "#5 key-down Tab\n")
	assert.Contains(t, got, "status: focus: cancel\n")
	assert.Contains(t, got, "status: command: save\n")
	assert.Contains(t, got, "dispatches, 0 errors")
	assert.Regexp(t, `Click\s+2 stopped=0`, got)
}

func TestTraceRun_Quit(t *testing.T) {
	path := writeScript(t, `
samples:
  - {type: key-down, key: q}
  - {type: key-down, key: Tab}
`)
	var out bytes.Buffer
	require.NoError(t, traceRun(&out, path, "", config.Default(), false))

	assert.Contains(t, out.String(), "quit\n")
	assert.NotContains(t, out.String(), "#2")
	assert.NotContains(t, out.String(), "dispatches")
}

func TestTraceRun_LuaScript(t *testing.T) {
	dir := t.TempDir()
	luaPath := filepath.Join(dir, "behaviors.lua")
	require.NoError(t, os.WriteFile(luaPath, []byte(`
ui.on("drag", "Click", function(evt)
    ui.status("lua click at " .. evt.lx .. "," .. evt.ly)
end)
`), 0o644))
	path := writeScript(t, `
samples:
  - {type: pointer-down, x: 42, y: 3}
  - {type: pointer-up, x: 42, y: 3}
`)
	var out bytes.Buffer
	require.NoError(t, traceRun(&out, path, luaPath, config.Default(), false))
	assert.Contains(t, out.String(), "status: lua click at 2,1\n")

	err := traceRun(&out, path, filepath.Join(dir, "missing.lua"), config.Default(), false)
	assert.Error(t, err)
}

func TestTraceRun_MissingScript(t *testing.T) {
	var out bytes.Buffer
	err := traceRun(&out, filepath.Join(t.TempDir(), "nope.yaml"), "", config.Default(), false)
	assert.Error(t, err)
}

func TestParseScript(t *testing.T) {
	w, h, samples, err := parseScript([]byte(`
size: [40, 12]
samples:
  - {type: pointer-move, pointer: 1, x: 3, y: 4}
  - {type: wheel, x: 1, y: 1, dy: -1, mods: ctrl}
  - {type: resize, width: 100, height: 30, at: 1000}
  - {type: key-up, key: c, mods: ctrl+shift}
`))
	require.NoError(t, err)
	assert.Equal(t, 40, w)
	assert.Equal(t, 12, h)
	require.Len(t, samples, 4)

	move := samples[0]
	assert.Equal(t, input.SamplePointerMove, move.Type)
	assert.Equal(t, ui.PointerTouch, move.PointerType)
	assert.True(t, move.Primary)
	assert.Equal(t, ui.ButtonNone, move.Button)
	assert.Equal(t, traceEpoch, move.Time)

	wheel := samples[1]
	assert.Equal(t, ui.Vec2{Y: -1}, wheel.Wheel)
	assert.True(t, wheel.Modifiers.HasCtrl())
	assert.Equal(t, traceEpoch.Add(traceStep), wheel.Time)

	resize := samples[2]
	assert.Equal(t, ui.Vec2{X: 100, Y: 30}, resize.Size)
	assert.Equal(t, traceEpoch.Add(time.Second), resize.Time)

	up := samples[3]
	assert.Equal(t, key.Stroke{Key: key.KeyRune, Rune: 'c', Modifiers: key.ModCtrl | key.ModShift}, up.Key)
	assert.Equal(t, traceEpoch.Add(time.Second+traceStep), up.Time)
}

func TestParseScript_Empty(t *testing.T) {
	w, h, samples, err := parseScript(nil)
	require.NoError(t, err)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
	assert.Empty(t, samples)
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"bad yaml", "samples: [\n"},
		{"unknown field", "colour: red\n"},
		{"bad size", "size: [1, 2, 3]\n"},
		{"unknown type", "samples: [{type: hover}]\n"},
		{"none type", "samples: [{type: none}]\n"},
		{"bad pointer", "samples: [{type: pointer-move, pointer: 99}]\n"},
		{"bad button", "samples: [{type: pointer-down, button: thumb}]\n"},
		{"bad key", "samples: [{type: key-down, key: Hyper}]\n"},
		{"empty command", "samples: [{type: command}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := parseScript([]byte(tt.script))
			assert.Error(t, err)
		})
	}
}

func TestParseButton(t *testing.T) {
	tests := []struct {
		in   string
		want ui.Button
	}{
		{"", ui.ButtonPrimary},
		{"left", ui.ButtonPrimary},
		{"Right", ui.ButtonSecondary},
		{"middle", ui.ButtonMiddle},
		{"back", ui.ButtonBack},
		{"forward", ui.ButtonForward},
	}
	for _, tt := range tests {
		got, err := parseButton(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name, mods string
		want       key.Stroke
		wantErr    bool
	}{
		{name: "Tab", want: key.Stroke{Key: key.KeyTab}},
		{name: "esc", want: key.Stroke{Key: key.KeyEscape}},
		{name: "F5", mods: "shift", want: key.Stroke{Key: key.KeyF5, Modifiers: key.ModShift}},
		{name: "x", mods: "alt", want: key.Stroke{Key: key.KeyRune, Rune: 'x', Modifiers: key.ModAlt}},
		{name: "", wantErr: true},
		{name: "Rune", wantErr: true},
		{name: "nope", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseKey(tt.name, tt.mods)
		if tt.wantErr {
			assert.Error(t, err, tt.name)
			continue
		}
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}
