package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/quidome/photo-birthtime/pkg/tags/tagstest"
)

func TestRootCommand_PrintsVersion(t *testing.T) {
	cmd := newRootCmd()

	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(out.String(), version) {
		t.Fatalf("expected output to include version, got %q", out.String())
	}
}

func TestRootCommand_MissingInputExitsWithTwo(t *testing.T) {
	tmp := t.TempDir()
	missing := filepath.Join(tmp, "nope")
	output := filepath.Join(tmp, "out")

	cmd := newRootCmd()

	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"-i", missing, "-o", output})

	err := cmd.Execute()
	var exitErr *exitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exitError, got %v", err)
	}
	if exitErr.code != 2 {
		t.Fatalf("expected exit code 2, got %d", exitErr.code)
	}
	if !strings.Contains(out.String(), "Input folder not found: "+missing) {
		t.Fatalf("unexpected output %q", out.String())
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("output directory should not be created: %v", err)
	}
}

func TestRootCommand_UnknownFlagExitsWithTwo(t *testing.T) {
	cmd := newRootCmd()

	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"--bogus"})

	var exitErr *exitError
	if err := cmd.Execute(); !errors.As(err, &exitErr) || exitErr.code != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
}

func TestRootCommand_RejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()

	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"extra"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestRootCommand_CopiesImagesAndSetsTimes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tool is a shell script")
	}

	tmp := t.TempDir()
	input := filepath.Join(tmp, "in")
	output := filepath.Join(tmp, "out")
	writeFile(t, input, "photo.jpg", tagstest.JPEG("2023:05:01 10:15:30"))
	writeFile(t, input, "broken.jpg", []byte("no exif here"))
	writeFile(t, input, "notes.txt", []byte("ignored"))

	tool := filepath.Join(tmp, "SetFile")
	writeFile(t, tmp, "SetFile", []byte("#!/bin/sh\nprintf '%s\\n' \"$@\" >> \"$0.args\"\n"))
	if err := os.Chmod(tool, 0o755); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	cmd := newRootCmd()

	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{
		"-i", input,
		"-o", output,
		"--verify",
		"--exiftool", filepath.Join(tmp, "no-exiftool"),
		"--setfile", tool,
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output1 := out.String()
	for _, want := range []string{"Created output directory", "Found 2 files", "Date updated", "Done."} {
		if !strings.Contains(output1, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output1)
		}
	}

	entries, err := os.ReadDir(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if strings.Join(names, ",") != "broken.jpg,photo.jpg" {
		t.Fatalf("unexpected output files: %v", names)
	}

	info, err := os.Stat(filepath.Join(output, "photo.jpg"))
	if err != nil {
		t.Fatalf("stat copy: %v", err)
	}
	want := time.Date(2023, 5, 1, 10, 15, 30, 0, time.Local)
	if !info.ModTime().Equal(want) {
		t.Fatalf("copy mod time: got %v want %v", info.ModTime(), want)
	}

	args, err := os.ReadFile(tool + ".args")
	if err != nil {
		t.Fatalf("read tool args: %v", err)
	}
	if string(args) != "-d\n05/01/2023 10:15:30\n"+filepath.Join(output, "photo.jpg")+"\n" {
		t.Fatalf("unexpected tool invocation %q", args)
	}
}

func TestRootCommand_DryRunLeavesOutputAlone(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "in")
	output := filepath.Join(tmp, "out")
	writeFile(t, input, "photo.jpg", tagstest.JPEG("2023:05:01 10:15:30"))

	cmd := newRootCmd()

	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{
		"-i", input,
		"-o", output,
		"--dry-run",
		"--exiftool", filepath.Join(tmp, "no-exiftool"),
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "Would set date") {
		t.Fatalf("expected dry-run report, got:\n%s", out.String())
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dry run created output directory: %v", err)
	}
}

func writeFile(t *testing.T, dir string, name string, data []byte) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}
