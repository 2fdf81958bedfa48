package template

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testValues = Values{
	ProjectNameKey: "lock-firmware",
	PackageNameKey: "lock_firmware",
}

func TestRenderer_RenderString(t *testing.T) {
	testCases := []struct {
		title  string
		opts   []ConfigOption
		before string
		after  string
	}{
		{
			title:  "single",
			before: "name = {{project-name}}",
			after:  "name = lock-firmware",
		},
		{
			title:  "multiple",
			before: "{{project-name}}/{{package_name}}/{{project-name}}",
			after:  "lock-firmware/lock_firmware/lock-firmware",
		},
		{
			title:  "whitespace",
			before: "{{ project-name }}",
			after:  "lock-firmware",
		},
		{
			title:  "unknown key",
			before: "{{authors}} {{project-name}}",
			after:  "{{authors}} lock-firmware",
		},
		{
			title:  "no placeholders",
			before: "plain text",
			after:  "plain text",
		},
		{
			title:  "custom delims",
			opts:   []ConfigOption{OptionDelims("<%", "%>")},
			before: "<% project-name %> {{project-name}}",
			after:  "lock-firmware {{project-name}}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			renderer, err := NewRenderer(testValues, NewConfig(tc.opts...), nil)
			require.NoError(t, err)

			assert.Equal(t, tc.after, renderer.RenderString(tc.before))
		})
	}
}

func TestNewRenderer_invalid_config(t *testing.T) {
	_, err := NewRenderer(testValues, NewConfig(OptionDelims("", "}}")), nil)
	assert.ErrorContains(t, err, "delimiters must not be empty")
}

func TestRenderer_RenderTree(t *testing.T) {
	src := fstest.MapFS{
		"README.md": &fstest.MapFile{
			Data: []byte("# {{project-name}}\n"),
			Mode: 0o644,
		},
		"src/{{package_name}}/main.go": &fstest.MapFile{
			Data: []byte("package {{package_name}}\n"),
			Mode: 0o644,
		},
		"bin/run.sh": &fstest.MapFile{
			Data: []byte("#!/bin/sh\necho {{project-name}}\n"),
			Mode: 0o755,
		},
		"assets/logo.bin": &fstest.MapFile{
			Data: []byte("\x89PNG\x00{{project-name}}"),
			Mode: 0o644,
		},
		".git/HEAD": &fstest.MapFile{
			Data: []byte("ref: refs/heads/main\n"),
			Mode: 0o644,
		},
	}

	dest := filepath.Join(t.TempDir(), "out")
	renderer, err := NewRenderer(testValues, nil, nil)
	require.NoError(t, err)

	written, err := renderer.RenderTree(context.Background(), src, dest)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"README.md",
		"src/lock_firmware/main.go",
		"bin/run.sh",
		"assets/logo.bin",
	}, written)

	readme, err := os.ReadFile(filepath.Join(dest, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# lock-firmware\n", string(readme))

	main, err := os.ReadFile(filepath.Join(dest, "src", "lock_firmware", "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package lock_firmware\n", string(main))

	logo, err := os.ReadFile(filepath.Join(dest, "assets", "logo.bin"))
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG\x00{{project-name}}", string(logo))

	info, err := os.Stat(filepath.Join(dest, "bin", "run.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100)

	_, err = os.Stat(filepath.Join(dest, ".git"))
	assert.True(t, os.IsNotExist(err))
}

func TestRenderer_RenderTree_unsafe_path(t *testing.T) {
	src := fstest.MapFS{
		"{{project-name}}/file.txt": &fstest.MapFile{Data: []byte("x"), Mode: 0o644},
	}

	renderer, err := NewRenderer(Values{ProjectNameKey: ".."}, nil, nil)
	require.NoError(t, err)

	_, err = renderer.RenderTree(context.Background(), src, t.TempDir())
	assert.ErrorIs(t, err, ErrUnsafePath)
}

func TestRenderer_RenderTree_cancelled(t *testing.T) {
	src := fstest.MapFS{
		"a.txt": &fstest.MapFile{Data: []byte("a"), Mode: 0o644},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer, err := NewRenderer(testValues, nil, nil)
	require.NoError(t, err)

	_, err = renderer.RenderTree(ctx, src, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsBinary(t *testing.T) {
	assert.False(t, IsBinary(nil))
	assert.False(t, IsBinary([]byte("hello {{project-name}}")))
	assert.True(t, IsBinary([]byte{0x7f, 'E', 'L', 'F', 0x00}))

	late := make([]byte, sniffLen+10)
	for i := range late {
		late[i] = 'a'
	}
	late[sniffLen+5] = 0
	assert.False(t, IsBinary(late))
}

func TestRenderer_RenderTree_destination_inside_source(t *testing.T) {
	srcDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(srcDir, "README.md"), []byte("# {{project-name}}\n"), 0o644))

	dest := filepath.Join(srcDir, "lock-firmware")
	renderer, err := NewRenderer(testValues, nil, nil)
	require.NoError(t, err)

	written, err := renderer.RenderTree(context.Background(), os.DirFS(srcDir), dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, written)

	_, err = os.Stat(filepath.Join(dest, "lock-firmware"))
	assert.True(t, os.IsNotExist(err))
}
