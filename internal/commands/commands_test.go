package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/repostats/internal/commands"
	"github.com/temirov/repostats/internal/types"
)

const (
	nodeModulesDirectoryName = "node_modules"
	gitDirectoryName         = ".git"
	logExtension             = ".log"
)

// writeTree creates every file in files below root, creating parent directories as needed.
func writeTree(testingHandle *testing.T, root string, files map[string]string) {
	testingHandle.Helper()
	for relativePath, content := range files {
		absolutePath := filepath.Join(root, filepath.FromSlash(relativePath))
		require.NoError(testingHandle, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testingHandle, os.WriteFile(absolutePath, []byte(content), 0o644))
	}
}

func processTree(testingHandle *testing.T, root string, rules commands.ExclusionRules) types.Totals {
	testingHandle.Helper()
	totals, processError := commands.NewProcessor(commands.ProcessorOptions{Rules: rules}).Process(context.Background(), root)
	require.NoError(testingHandle, processError)
	return totals
}

func TestCountText(testingHandle *testing.T) {
	testCases := []struct {
		testName string
		content  string
		expected commands.FileMetrics
	}{
		{testName: "empty content", content: "", expected: commands.FileMetrics{Lines: 1, Words: 0}},
		{testName: "trailing newline", content: "a\nb\n", expected: commands.FileMetrics{Lines: 3, Words: 2}},
		{testName: "no trailing newline", content: "a\nb", expected: commands.FileMetrics{Lines: 2, Words: 2}},
		{testName: "whitespace runs", content: "  a   b\tc\n\n", expected: commands.FileMetrics{Lines: 3, Words: 3}},
		{testName: "carriage returns", content: "one\r\ntwo\r\n", expected: commands.FileMetrics{Lines: 3, Words: 2}},
		{testName: "only whitespace", content: " \t\r\n", expected: commands.FileMetrics{Lines: 2, Words: 0}},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.testName, func(subTest *testing.T) {
			assert.Equal(subTest, testCase.expected, commands.CountText(testCase.content))
		})
	}
}

func TestFileExtension(testingHandle *testing.T) {
	testCases := map[string]string{
		"a.txt":          ".txt",
		"archive.tar.gz": ".gz",
		"Makefile":       "",
		".bashrc":        "",
		".eslintrc.json": ".json",
		"name.":          ".",
		"b.LOG":          ".LOG",
	}
	for name, expected := range testCases {
		assert.Equal(testingHandle, expected, commands.FileExtension(name), name)
	}
}

func TestExclusionRulesMatchExactly(testingHandle *testing.T) {
	rules := commands.NewExclusionRules([]string{nodeModulesDirectoryName, ""}, []string{logExtension})

	assert.True(testingHandle, rules.SkipsDirectory(nodeModulesDirectoryName))
	assert.False(testingHandle, rules.SkipsDirectory("node_modules_backup"))
	assert.False(testingHandle, rules.SkipsDirectory("Node_Modules"))
	assert.False(testingHandle, rules.SkipsDirectory(""))

	assert.True(testingHandle, rules.SkipsFile("b.log"))
	assert.False(testingHandle, rules.SkipsFile("b.LOG"))
	assert.False(testingHandle, rules.SkipsFile("b.logs"))
	assert.False(testingHandle, rules.SkipsFile(".log"))

	var zeroRules commands.ExclusionRules
	assert.False(testingHandle, zeroRules.SkipsDirectory(gitDirectoryName))
	assert.False(testingHandle, zeroRules.SkipsFile("b.log"))
}

func TestDefaultExclusionRules(testingHandle *testing.T) {
	rules := commands.DefaultExclusionRules()
	assert.True(testingHandle, rules.SkipsDirectory(nodeModulesDirectoryName))
	assert.True(testingHandle, rules.SkipsDirectory(gitDirectoryName))
	assert.False(testingHandle, rules.SkipsFile("b.log"))
}

// TestProcessScenario verifies the reference scenario with an excluded dependency directory.
func TestProcessScenario(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, map[string]string{
		"a.txt":                  "hello world\n",
		"b.log":                  "x\n",
		"node_modules/c.txt":     "ignored\n",
		"node_modules/deep/d.js": "ignored too\n",
	})
	rules := commands.NewExclusionRules([]string{nodeModulesDirectoryName}, nil)

	totals := processTree(testingHandle, root, rules)
	assert.Equal(testingHandle, types.Totals{Lines: 4, Words: 3, Files: 2}, totals)

	eligible, countError := commands.CountEligible(context.Background(), root, rules)
	require.NoError(testingHandle, countError)
	assert.Equal(testingHandle, totals.Files, eligible)
}

func TestExcludedDirectoryAtAnyDepth(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, map[string]string{
		"src/main.go":                       "package main\n",
		"src/web/node_modules/lib/index.js": "module.exports = 1\n",
		"src/web/node_modules/readme.md":    "words words words",
		"src/web/app.js":                    "run()",
		"vendor/.git/HEAD":                  "ref: refs/heads/main\n",
		"docs/node_modules_notes/kept.md":   "kept",
	})
	rules := commands.NewExclusionRules([]string{nodeModulesDirectoryName, gitDirectoryName}, nil)

	totals := processTree(testingHandle, root, rules)
	assert.Equal(testingHandle, 3, totals.Files)
	assert.Equal(testingHandle, types.Totals{Lines: 2 + 1 + 1, Words: 2 + 1 + 1, Files: 3}, totals)

	eligible, countError := commands.CountEligible(context.Background(), root, rules)
	require.NoError(testingHandle, countError)
	assert.Equal(testingHandle, totals.Files, eligible)
}

func TestExcludedExtensionIsCaseSensitive(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, map[string]string{
		"a.txt":         "alpha",
		"b.log":         "beta",
		"C.LOG":         "gamma",
		"nested/d.log":  "delta",
		"nested/e.logs": "epsilon",
		".log":          "dotfile",
	})
	rules := commands.NewExclusionRules(nil, []string{logExtension})

	totals := processTree(testingHandle, root, rules)
	assert.Equal(testingHandle, 4, totals.Files)

	eligible, countError := commands.CountEligible(context.Background(), root, rules)
	require.NoError(testingHandle, countError)
	assert.Equal(testingHandle, 4, eligible)
}

func TestSiblingSubtreesCombineToUnion(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, map[string]string{
		"left/one.txt":       "one two\nthree\n",
		"left/inner/two.txt": "four",
		"right/three.txt":    "five six seven",
		"right/four.md":      "\n\n\n",
	})
	rules := commands.NewExclusionRules(nil, nil)

	leftTotals := processTree(testingHandle, filepath.Join(root, "left"), rules)
	rightTotals := processTree(testingHandle, filepath.Join(root, "right"), rules)
	unionTotals := processTree(testingHandle, root, rules)

	assert.Equal(testingHandle, unionTotals, leftTotals.Add(rightTotals))
	assert.Equal(testingHandle, types.Totals{Lines: 3 + 1 + 1 + 4, Words: 3 + 1 + 3, Files: 4}, unionTotals)
}

func TestEmptyDirectory(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	totals := processTree(testingHandle, root, commands.DefaultExclusionRules())
	assert.Equal(testingHandle, types.Totals{}, totals)

	eligible, countError := commands.CountEligible(context.Background(), root, commands.DefaultExclusionRules())
	require.NoError(testingHandle, countError)
	assert.Zero(testingHandle, eligible)
}

// TestProcessAbortsOnReadFailure uses a dangling symlink, which is listed as a file but cannot be read.
func TestProcessAbortsOnReadFailure(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, map[string]string{"nested/ok.txt": "fine"})
	danglingPath := filepath.Join(root, "nested", "dangling.txt")
	if symlinkError := os.Symlink(filepath.Join(root, "missing"), danglingPath); symlinkError != nil {
		testingHandle.Skipf("symlinks unavailable: %v", symlinkError)
	}

	totals, processError := commands.NewProcessor(commands.ProcessorOptions{}).Process(context.Background(), root)
	require.Error(testingHandle, processError)
	assert.ErrorIs(testingHandle, processError, os.ErrNotExist)
	assert.Contains(testingHandle, processError.Error(), danglingPath)
	assert.Equal(testingHandle, types.Totals{}, totals)
}

func TestMissingRootAbortsBothPasses(testingHandle *testing.T) {
	missingRoot := filepath.Join(testingHandle.TempDir(), "absent")

	_, countError := commands.CountEligible(context.Background(), missingRoot, commands.DefaultExclusionRules())
	require.Error(testingHandle, countError)
	assert.ErrorIs(testingHandle, countError, os.ErrNotExist)

	_, processError := commands.NewProcessor(commands.ProcessorOptions{}).Process(context.Background(), missingRoot)
	require.Error(testingHandle, processError)
	assert.ErrorIs(testingHandle, processError, os.ErrNotExist)
}

func TestEmptyRootIsRejected(testingHandle *testing.T) {
	_, countError := commands.CountEligible(context.Background(), "", commands.DefaultExclusionRules())
	assert.Error(testingHandle, countError)
	_, processError := commands.NewProcessor(commands.ProcessorOptions{}).Process(context.Background(), "")
	assert.Error(testingHandle, processError)
}

func TestCancelledContextStopsTraversal(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, map[string]string{"a.txt": "a"})
	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	_, countError := commands.CountEligible(cancelledContext, root, commands.DefaultExclusionRules())
	assert.ErrorIs(testingHandle, countError, context.Canceled)
	_, processError := commands.NewProcessor(commands.ProcessorOptions{}).Process(cancelledContext, root)
	assert.ErrorIs(testingHandle, processError, context.Canceled)
}

func TestGlobalProgressIsMonotonic(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, map[string]string{
		"a.txt":           "a",
		"sub/b.txt":       "b",
		"sub/deep/c.md":   "c",
		"sub/ignored.log": "x",
	})
	rules := commands.NewExclusionRules(nil, []string{logExtension})
	total, countError := commands.CountEligible(context.Background(), root, rules)
	require.NoError(testingHandle, countError)
	require.Equal(testingHandle, 3, total)

	var messages []string
	processor := commands.NewProcessor(commands.ProcessorOptions{
		Rules:    rules,
		Total:    total,
		Progress: commands.ProgressReporterFunc(func(message string) { messages = append(messages, message) }),
	})
	totals, processError := processor.Process(context.Background(), root)
	require.NoError(testingHandle, processError)

	assert.Equal(testingHandle, []string{
		"Processing files... (1/3)",
		"Processing files... (2/3)",
		"Processing files... (3/3)",
	}, messages)
	assert.Equal(testingHandle, totals.Files, processor.Processed())
}

func TestGlobalProgressWithoutTotal(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, map[string]string{"a.txt": "a", "b.txt": "b"})

	var messages []string
	processor := commands.NewProcessor(commands.ProcessorOptions{
		Progress: commands.ProgressReporterFunc(func(message string) { messages = append(messages, message) }),
	})
	_, processError := processor.Process(context.Background(), root)
	require.NoError(testingHandle, processError)
	assert.Equal(testingHandle, []string{"Processing files... (1)", "Processing files... (2)"}, messages)
}

// TestDirectoryProgressUsesListingLength verifies the per-level fraction: the
// running count of the level, including folded subdirectories, over the number
// of entries in the level's listing.
func TestDirectoryProgressUsesListingLength(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, map[string]string{
		"a.txt":     "a",
		"sub/b.txt": "b",
		"sub/c.txt": "c",
		"skip.log":  "x",
	})
	rules := commands.NewExclusionRules(nil, []string{logExtension})

	var messages []string
	processor := commands.NewProcessor(commands.ProcessorOptions{
		Rules:       rules,
		Total:       3,
		Denominator: types.DenominatorDirectory,
		Progress:    commands.ProgressReporterFunc(func(message string) { messages = append(messages, message) }),
	})
	_, processError := processor.Process(context.Background(), root)
	require.NoError(testingHandle, processError)

	require.Len(testingHandle, messages, 3)
	assert.Contains(testingHandle, messages, "Processing files... (1/2)")
	assert.Contains(testingHandle, messages, "Processing files... (2/2)")
	rootMessages := 0
	for _, message := range messages {
		if strings.HasSuffix(message, "/3)") {
			rootMessages++
			assert.Contains(testingHandle, []string{"Processing files... (1/3)", "Processing files... (3/3)"}, message)
		}
	}
	assert.Equal(testingHandle, 1, rootMessages)
}

func TestUnsupportedDenominator(testingHandle *testing.T) {
	processor := commands.NewProcessor(commands.ProcessorOptions{Denominator: "percent"})
	_, processError := processor.Process(context.Background(), testingHandle.TempDir())
	assert.Error(testingHandle, processError)
}
