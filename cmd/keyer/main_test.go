package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"github.com/valerio/go-keyer/keyer"
	"github.com/valerio/go-keyer/keyer/backend"
	"github.com/valerio/go-keyer/keyer/iambic"
)

func contextWith(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	app := newApp()
	set := flag.NewFlagSet("keyer", flag.ContinueOnError)
	for _, f := range app.Flags {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(app, set, nil)
}

func TestConfigFromContext(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    keyer.Config
		wantErr error
	}{
		{
			name: "defaults",
			want: keyer.DefaultConfig(),
		},
		{
			name: "mode A at 25 wpm",
			args: []string{"--wpm", "25", "--mode", "a", "--tone-duty", "10"},
			want: keyer.Config{WPM: 25, Mode: iambic.ModeA, ToneDuty: 10},
		},
		{
			name:    "too slow",
			args:    []string{"--wpm", "2"},
			wantErr: keyer.ErrInvalidWPM,
		},
		{
			name:    "unknown mode",
			args:    []string{"--mode", "c"},
			wantErr: keyer.ErrInvalidMode,
		},
		{
			name:    "duty over 100",
			args:    []string{"--tone-duty", "300"},
			wantErr: keyer.ErrInvalidToneDuty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := configFromContext(contextWith(t, tt.args...))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, config)
		})
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("KEYER_WPM", "30")
	t.Setenv("KEYER_MODE", "A")

	config, err := configFromContext(contextWith(t))
	require.NoError(t, err)
	assert.Equal(t, 30, config.WPM)
	assert.Equal(t, iambic.ModeA, config.Mode)
}

func TestPinsFromContext(t *testing.T) {
	pins := pinsFromContext(contextWith(t, "--dit-pin", "GPIO5", "--dah-pin", "GPIO6", "--tone-pin", "GPIO18", "--buzzer-pin", ""))
	assert.Equal(t, "GPIO5", pins.Dit)
	assert.Equal(t, "GPIO6", pins.Dah)
	assert.Equal(t, "GPIO18", pins.Tone)
	assert.Empty(t, pins.Buzzer)
	assert.NotEmpty(t, pins.LED)
}

func TestLoadScript(t *testing.T) {
	script, err := loadScript(contextWith(t, "--script", ".-_"))
	require.NoError(t, err)
	assert.Equal(t, []backend.Contacts{{Dit: true}, {Dah: true}, {}}, script)

	path := filepath.Join(t.TempDir(), "squeeze.txt")
	require.NoError(t, os.WriteFile(path, []byte("==\n__\n"), 0o644))
	script, err = loadScript(contextWith(t, "--script-file", path))
	require.NoError(t, err)
	assert.Len(t, script, 4)

	script, err = loadScript(contextWith(t, "-", "."))
	require.NoError(t, err)
	assert.Equal(t, []backend.Contacts{{Dah: true}, {Dit: true}}, script)

	_, err = loadScript(contextWith(t))
	assert.Error(t, err)

	_, err = loadScript(contextWith(t, "--script", "x"))
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	level, err := parseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = parseLogLevel("loud")
	assert.Error(t, err)
}

func TestRunHeadless(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	err := newApp().Run([]string{"keyer", "--backend", "headless", "--script", "==__", "--log-level", "error"})
	assert.NoError(t, err)

	err = newApp().Run([]string{"keyer", "--backend", "nope", "--log-level", "error"})
	assert.ErrorContains(t, err, `unknown backend "nope"`)
}
