package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScene = `
width: 40
height: 20
background: "#000"
shapes:
  - polygon: [[2, 2], [38, 2], [20, 18]]
    brush: {solid: "#fff"}
`

func writeScene(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir, path
}

func TestRun(t *testing.T) {
	for _, backend := range []string{"software", "wgpu"} {
		t.Run(backend, func(t *testing.T) {
			dir, path := writeScene(t)
			out := filepath.Join(dir, "out.png")
			var stdout, stderr bytes.Buffer
			err := run([]string{"-scene", path, "-out", out, "-backend", backend, "-v"}, &stdout, &stderr)
			if err != nil {
				t.Fatalf("run: %v\n%s", err, stderr.String())
			}
			if !strings.Contains(stdout.String(), "1 fills") {
				t.Errorf("summary = %q", stdout.String())
			}
			if !strings.Contains(stderr.String(), "pathfill: flush") {
				t.Errorf("verbose log has no flush line:\n%s", stderr.String())
			}

			f, err := os.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
				t.Errorf("output bounds = %v", b)
			}
		})
	}
}

func TestRunSoftwarePixels(t *testing.T) {
	dir, path := writeScene(t)
	out := filepath.Join(dir, "out.png")
	if err := run([]string{"-scene", path, "-out", out}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, _, _ := img.At(20, 5).RGBA(); r != 0xffff {
		t.Errorf("inside pixel red = %#x, want white", r)
	}
	if r, _, _, a := img.At(2, 17).RGBA(); r != 0 || a != 0xffff {
		t.Errorf("outside pixel = %#x/%#x, want opaque black", r, a)
	}
}

func TestRunErrors(t *testing.T) {
	_, path := writeScene(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no scene", nil, "missing -scene"},
		{"unknown backend", []string{"-scene", path, "-backend", "metal"}, "unknown backend"},
		{"missing file", []string{"-scene", path + ".nope"}, "no such file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{}, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("run = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestBackendsRegistry(t *testing.T) {
	b := newBackends()
	if b.BestName() != "software" {
		t.Errorf("default backend = %q, want software", b.BestName())
	}
	if b.Count() != 2 {
		t.Errorf("backends = %v", b.Available())
	}
}
