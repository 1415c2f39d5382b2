package sorter_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"vidsort/internal/config"
	"vidsort/internal/fileutil"
	"vidsort/internal/sorter"
	"vidsort/internal/testsupport"
)

type recordingPreviewer struct {
	paths []string
	err   error
}

func (r *recordingPreviewer) Preview(_ context.Context, path string) error {
	r.paths = append(r.paths, path)
	return r.err
}

func newSorter(t *testing.T, cfg *config.Config, input string, opts ...func(*sorter.Options)) (*sorter.Sorter, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	o := sorter.OptionsFromConfig(cfg)
	o.In = strings.NewReader(input)
	o.Out = out
	for _, opt := range opts {
		opt(&o)
	}
	s, err := sorter.New(o)
	if err != nil {
		t.Fatalf("new sorter: %v", err)
	}
	return s, out
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected %s to be gone, stat err=%v", path, err)
	}
}

func TestNewRequiresDestinations(t *testing.T) {
	_, err := sorter.New(sorter.Options{UndoKey: "u", QuitKey: "q"})
	if err == nil {
		t.Fatal("expected error without destinations")
	}
}

func TestRunMovesFileToMappedDestination(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	paths := testsupport.WriteVideos(t, src, "clip.mp4")

	previewer := &recordingPreviewer{}
	s, out := newSorter(t, cfg, "k\n", func(o *sorter.Options) { o.Previewer = previewer })
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	assertMissing(t, paths[0])
	assertExists(t, filepath.Join(cfg.Destinations["k"], "clip.mp4"))
	if summary.Moved != 1 || summary.Total != 1 || summary.Quit {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(previewer.paths) != 1 || previewer.paths[0] != paths[0] {
		t.Fatalf("expected preview of %s, got %v", paths[0], previewer.paths)
	}
	text := out.String()
	for _, want := range []string{"Current key to directory mappings", "[1/1] Opening", "Your choice: ", "Moved "} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunNormalizesInput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	testsupport.WriteVideos(t, src, "a.mp4", "b.mp4")

	s, _ := newSorter(t, cfg, "  K \r\nD\n")
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Moved != 2 {
		t.Fatalf("expected both files moved, got %+v", summary)
	}
	assertExists(t, filepath.Join(cfg.Destinations["k"], "a.mp4"))
	assertExists(t, filepath.Join(cfg.Destinations["d"], "b.mp4"))
}

func TestRunSkipsUnmappedInput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	paths := testsupport.WriteVideos(t, src, "a.mp4", "b.mp4")

	s, out := newSorter(t, cfg, "x\n\n")
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Skipped != 2 || summary.Moved != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	for _, p := range paths {
		assertExists(t, p)
	}
	if strings.Count(out.String(), "skipping") != 2 {
		t.Fatalf("expected two skip notices:\n%s", out.String())
	}
}

func TestRunSkipKeepsUndoRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	paths := testsupport.WriteVideos(t, src, "a.mp4", "b.mp4", "c.mp4")
	moved := filepath.Join(cfg.Destinations["k"], "a.mp4")

	s, _ := newSorter(t, cfg, "k\nz\n")
	if _, err := s.Run(context.Background(), src); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := sorter.MoveRecord{MovedTo: moved, Original: paths[0]}
	if last, ok := s.LastMove(); !ok || last != want {
		t.Fatalf("skip changed the undo record: got %+v (%v), want %+v", last, ok, want)
	}
	assertExists(t, paths[1])

	s, _ = newSorter(t, cfg, "k\nz\nu\n")
	testsupport.WriteVideos(t, src, "a.mp4")
	if err := os.Remove(moved); err != nil {
		t.Fatalf("reset destination: %v", err)
	}
	if _, err := s.Run(context.Background(), src); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertExists(t, paths[0])
	assertExists(t, paths[1])
	assertExists(t, paths[2])
	assertMissing(t, moved)
}

func TestRunCountsEveryOfferedFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	testsupport.WriteVideos(t, src, "a.mp4", "b.mp4", "c.mp4", "d.mp4")

	// Undo with nothing recorded, a move, a successful undo, then another
	// undo with nothing left.
	s, _ := newSorter(t, cfg, "u\nk\nu\nu\n")
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Offered != 4 {
		t.Fatalf("expected all 4 files counted as offered, got %+v", summary)
	}
	if !strings.Contains(summary.String(), "Processed 4 of 4") {
		t.Fatalf("unexpected summary text: %q", summary.String())
	}
}

func TestRunQuitIsNotCountedAsOffered(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	testsupport.WriteVideos(t, src, "a.mp4", "b.mp4")

	s, _ := newSorter(t, cfg, "z\nq\n")
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Offered != 1 || !summary.Quit {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunQuitLeavesRemainingFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	paths := testsupport.WriteVideos(t, src, "a.mp4", "b.mp4", "c.mp4")

	s, out := newSorter(t, cfg, "k\nq\nk\n")
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !summary.Quit || summary.Moved != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	assertExists(t, paths[1])
	assertExists(t, paths[2])
	if !strings.Contains(out.String(), "Exiting...") {
		t.Fatalf("expected exit notice:\n%s", out.String())
	}
	if strings.Contains(out.String(), "[3/3]") {
		t.Fatalf("third file should not be offered after quit:\n%s", out.String())
	}
}

func TestRunClosedInputEndsSession(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	paths := testsupport.WriteVideos(t, src, "a.mp4", "b.mp4")

	s, _ := newSorter(t, cfg, "")
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("closed input should end the session cleanly: %v", err)
	}
	if !summary.Quit {
		t.Fatalf("expected quit on closed input: %+v", summary)
	}
	for _, p := range paths {
		assertExists(t, p)
	}
}

func TestRunFinalLineWithoutNewline(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	testsupport.WriteVideos(t, src, "a.mp4")

	s, _ := newSorter(t, cfg, "d")
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Moved != 1 {
		t.Fatalf("expected move from unterminated line: %+v", summary)
	}
	assertExists(t, filepath.Join(cfg.Destinations["d"], "a.mp4"))
}

func TestRunNoEligibleFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	testsupport.WriteVideos(t, src, "notes.txt", "._hidden.mp4")
	if err := os.Mkdir(filepath.Join(src, "folder.mp4"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	previewer := &recordingPreviewer{}
	s, out := newSorter(t, cfg, "k\n", func(o *sorter.Options) { o.Previewer = previewer })
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Total != 0 {
		t.Fatalf("expected no files, got %+v", summary)
	}
	if !strings.Contains(out.String(), "No .mp4 files found in the directory.") {
		t.Fatalf("missing empty notice:\n%s", out.String())
	}
	if len(previewer.paths) != 0 {
		t.Fatalf("nothing should be previewed, got %v", previewer.paths)
	}
}

func TestRunUndoReturnsPreviousFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	paths := testsupport.WriteVideos(t, src, "a.mp4", "b.mp4")

	s, out := newSorter(t, cfg, "k\nu\n")
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	assertExists(t, paths[0])
	assertExists(t, paths[1])
	assertMissing(t, filepath.Join(cfg.Destinations["k"], "a.mp4"))
	if summary.Undone != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !strings.Contains(out.String(), "Moved a.mp4 back to "+paths[0]) {
		t.Fatalf("missing undo notice:\n%s", out.String())
	}
	if _, ok := s.LastMove(); ok {
		t.Fatal("undo record should be cleared")
	}
}

func TestRunUndoIsSingleLevel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	paths := testsupport.WriteVideos(t, src, "a.mp4", "b.mp4", "c.mp4", "d.mp4")

	s, out := newSorter(t, cfg, "k\nk\nu\nu\n")
	if _, err := s.Run(context.Background(), src); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertExists(t, filepath.Join(cfg.Destinations["k"], "a.mp4"))
	assertExists(t, paths[1])
	if !strings.Contains(out.String(), "No file move to undo.") {
		t.Fatalf("second undo should report nothing to undo:\n%s", out.String())
	}
}

func TestRunUndoWithoutHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	paths := testsupport.WriteVideos(t, src, "a.mp4")

	s, out := newSorter(t, cfg, "u\n")
	if _, err := s.Run(context.Background(), src); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertExists(t, paths[0])
	if !strings.Contains(out.String(), "No file move to undo.") {
		t.Fatalf("missing notice:\n%s", out.String())
	}
}

func TestRunNameConflictKeepsBothFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	testsupport.WriteVideos(t, src, "clip.mp4")
	existing := filepath.Join(cfg.Destinations["k"], "clip.mp4")
	if err := os.WriteFile(existing, []byte("already here"), 0o644); err != nil {
		t.Fatalf("seed destination: %v", err)
	}

	s, out := newSorter(t, cfg, "k\n")
	if _, err := s.Run(context.Background(), src); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(existing)
	if err != nil || string(data) != "already here" {
		t.Fatalf("existing file changed: %q %v", data, err)
	}
	assertExists(t, filepath.Join(cfg.Destinations["k"], "clip_1.mp4"))
	if !strings.Contains(out.String(), "Name conflict") {
		t.Fatalf("missing conflict notice:\n%s", out.String())
	}
}

func TestRunContinuesAfterMoveFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	paths := testsupport.WriteVideos(t, src, "a.mp4", "b.mp4")
	if err := os.RemoveAll(cfg.Destinations["k"]); err != nil {
		t.Fatalf("remove destination: %v", err)
	}

	s, out := newSorter(t, cfg, "k\nd\n")
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Failed != 1 || summary.Moved != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	assertExists(t, paths[0])
	assertExists(t, filepath.Join(cfg.Destinations["d"], "b.mp4"))
	if !strings.Contains(out.String(), "Error moving a.mp4") {
		t.Fatalf("missing failure notice:\n%s", out.String())
	}
	if last, ok := s.LastMove(); !ok || last.Original != paths[1] {
		t.Fatalf("failed move must not replace the undo record: %+v %v", last, ok)
	}
}

func TestRunPreviewFailureStillPrompts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	testsupport.WriteVideos(t, src, "a.mp4")

	previewer := &recordingPreviewer{err: errors.New("viewer missing")}
	s, out := newSorter(t, cfg, "k\n", func(o *sorter.Options) { o.Previewer = previewer })
	summary, err := s.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Moved != 1 {
		t.Fatalf("expected move despite preview failure: %+v", summary)
	}
	if !strings.Contains(out.String(), "Preview unavailable") {
		t.Fatalf("missing preview warning:\n%s", out.String())
	}
}

func TestRunMissingSourceDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s, _ := newSorter(t, cfg, "")
	if _, err := s.Run(context.Background(), filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing source directory")
	}
}

func TestRunCanceledContext(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	testsupport.WriteVideos(t, src, "a.mp4")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _ := newSorter(t, cfg, "k\n")
	if _, err := s.Run(ctx, src); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMovePreservesModificationTime(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	paths := testsupport.WriteVideos(t, src, "a.mp4")
	stamp := time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC)
	testsupport.SetModTime(t, paths[0], stamp)

	s, _ := newSorter(t, cfg, "")
	result, err := s.Move(paths[0], cfg.Destinations["k"])
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if result.MetadataErr != nil {
		t.Fatalf("metadata: %v", result.MetadataErr)
	}
	info, err := os.Stat(result.Destination)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("modtime = %v, want %v", info.ModTime(), stamp)
	}

	if _, err := s.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	info, err = os.Stat(paths[0])
	if err != nil {
		t.Fatalf("stat after undo: %v", err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("modtime after undo = %v, want %v", info.ModTime(), stamp)
	}
}

func TestUndoRefusesToOverwrite(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := testsupport.SourceDir(cfg)
	paths := testsupport.WriteVideos(t, src, "a.mp4")

	s, _ := newSorter(t, cfg, "")
	result, err := s.Move(paths[0], cfg.Destinations["k"])
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := os.WriteFile(paths[0], []byte("replacement"), 0o644); err != nil {
		t.Fatalf("write replacement: %v", err)
	}

	_, err = s.Undo()
	if !errors.Is(err, fileutil.ErrDestinationExists) {
		t.Fatalf("expected ErrDestinationExists, got %v", err)
	}
	var moveErr *sorter.MoveError
	if !errors.As(err, &moveErr) || moveErr.Op != "undo" {
		t.Fatalf("expected undo MoveError, got %T", err)
	}
	data, _ := os.ReadFile(paths[0])
	if string(data) != "replacement" {
		t.Fatalf("original path overwritten: %q", data)
	}
	assertExists(t, result.Destination)
	if _, err := s.Undo(); !errors.Is(err, sorter.ErrNothingToUndo) {
		t.Fatalf("record should be cleared after failed undo, got %v", err)
	}
}

func TestMoveThenUndoRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 15

	properties := gopter.NewProperties(parameters)
	properties.Property("undo returns the file with its content", prop.ForAll(
		func(stem string, taken bool) bool {
			base, err := os.MkdirTemp("", "vidsort-roundtrip-*")
			if err != nil {
				return false
			}
			defer os.RemoveAll(base)

			srcDir := filepath.Join(base, "src")
			destDir := filepath.Join(base, "dest")
			if os.MkdirAll(srcDir, 0o755) != nil || os.MkdirAll(destDir, 0o755) != nil {
				return false
			}
			name := stem + ".mp4"
			src := filepath.Join(srcDir, name)
			if os.WriteFile(src, []byte(stem), 0o644) != nil {
				return false
			}
			if taken {
				if os.WriteFile(filepath.Join(destDir, name), []byte("other"), 0o644) != nil {
					return false
				}
			}

			s, err := sorter.New(sorter.Options{
				Destinations: map[string]string{"k": destDir},
				UndoKey:      "u",
				QuitKey:      "q",
				Out:          &bytes.Buffer{},
			})
			if err != nil {
				return false
			}
			result, err := s.Move(src, destDir)
			if err != nil || result.Conflicted != taken {
				return false
			}
			if _, err := s.Undo(); err != nil {
				return false
			}
			data, err := os.ReadFile(src)
			if err != nil || string(data) != stem {
				return false
			}
			_, err = os.Stat(result.Destination)
			return errors.Is(err, os.ErrNotExist)
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" && len(s) < 40 }),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestRenderLegendListsKeysAndCommands(t *testing.T) {
	legend := sorter.RenderLegend(map[string]string{"k": "/keep", "d": "/discard"}, "u", "q")
	for _, want := range []string{"/keep", "/discard", "Undo last move", "Quit"} {
		if !strings.Contains(legend, want) {
			t.Fatalf("legend missing %q:\n%s", want, legend)
		}
	}
	if strings.Index(legend, "/discard") > strings.Index(legend, "/keep") {
		t.Fatalf("destinations should be listed in key order:\n%s", legend)
	}
}

func TestAcquireLockRejectsSecondSession(t *testing.T) {
	dir := t.TempDir()
	first, err := sorter.AcquireLock(dir)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}
	if _, err := sorter.AcquireLock(dir); !errors.Is(err, sorter.ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	second, err := sorter.AcquireLock(dir)
	if err != nil {
		t.Fatalf("lock after release: %v", err)
	}
	_ = second.Release()
}

func TestSummaryString(t *testing.T) {
	got := sorter.Summary{Total: 5, Offered: 4, Moved: 2, Skipped: 1, Failed: 1}.String()
	if !strings.Contains(got, "4 of 5") || !strings.Contains(got, "2 moved") {
		t.Fatalf("unexpected summary text: %q", got)
	}
}
