package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, FileName)
	write(t, cfgPath, "")
	src := filepath.Join(root, "a", "b", "main.ark")
	write(t, src, "")

	got, err := Find(src)
	require.NoError(t, err)
	require.Equal(t, cfgPath, got)

	got, err = Find(filepath.Dir(src))
	require.NoError(t, err)
	require.Equal(t, cfgPath, got)
}

func TestFindNotFound(t *testing.T) {
	// корень временного каталога может лежать под чужим arkc.toml
	dir := t.TempDir()
	if _, err := Find(filepath.Dir(dir)); err == nil {
		t.Skip("arkc.toml exists above the temp dir")
	}
	_, err := Find(dir)
	require.ErrorIs(t, err, ErrNotFound)

	cfg, err := Discover(dir)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	write(t, path, `
[compiler]
max_diagnostics = 5
jobs = 2
cache = true

[output]
color = "off"

[files]
exclude = ["gen/**"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, cfg.Path)
	require.Equal(t, 5, cfg.Compiler.MaxDiagnostics)
	require.Equal(t, 256, cfg.Compiler.MaxDepth)
	require.Equal(t, 2, cfg.Compiler.Jobs)
	require.True(t, cfg.Compiler.Cache)
	require.Equal(t, "off", cfg.Output.Color)
	require.Equal(t, "pretty", cfg.Output.Format)
	require.Equal(t, []string{"**/*.ark"}, cfg.Files.Include)
	require.Equal(t, []string{"gen/**"}, cfg.Files.Exclude)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"syntax":  "[compiler\n",
		"unknown": "[compiler]\nspeed = 3\n",
		"color":   "[output]\ncolor = \"rainbow\"\n",
		"format":  "[output]\nformat = \"xml\"\n",
		"depth":   "[compiler]\nmax_depth = -1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name, FileName)
			write(t, path, content)
			_, err := Load(path)
			require.Error(t, err)
			require.Contains(t, err.Error(), path)
		})
	}
}
