package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"whitespace trimmed", "svg, png", []string{"svg", "png"}},
		{"pdf only", "pdf", []string{"pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"no output strips input extension", "", "chart.toml", "chart"},
		{"output with format extension", "out.svg", "chart.toml", "out"},
		{"output with png extension", "out.png", "chart.toml", "out"},
		{"output without format extension", "out", "chart.toml", "out"},
		{"output with unknown extension", "out.txt", "chart.toml", "out.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	}

	t.Run("single format with explicit output", func(t *testing.T) {
		out := filepath.Join(dir, "explicit.svg")
		paths, err := writeArtifacts(filepath.Join(dir, "chart.toml"), out, []string{"svg"}, artifacts)
		if err != nil {
			t.Fatalf("writeArtifacts() error: %v", err)
		}
		if len(paths) != 1 || paths[0] != out {
			t.Errorf("paths = %v, want [%s]", paths, out)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		if string(data) != "<svg/>" {
			t.Errorf("output content = %q", data)
		}
	})

	t.Run("multiple formats derive from input", func(t *testing.T) {
		input := filepath.Join(dir, "chart.toml")
		paths, err := writeArtifacts(input, "", []string{"svg", "json"}, artifacts)
		if err != nil {
			t.Fatalf("writeArtifacts() error: %v", err)
		}
		want := []string{
			filepath.Join(dir, "chart.svg"),
			filepath.Join(dir, "chart.json"),
		}
		if !reflect.DeepEqual(paths, want) {
			t.Errorf("paths = %v, want %v", paths, want)
		}
		for _, p := range want {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("expected output file %s: %v", p, err)
			}
		}
	})
}
