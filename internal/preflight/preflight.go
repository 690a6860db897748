package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"auxpatch/internal/fileutil"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Request describes the locations a patch run is about to write.
type Request struct {
	InPlace   bool
	Targets   []string
	OutputDir string
	StateDir  string
}

// RunAll executes the checks applicable to req. In-place targets are checked
// at the file their symlinks resolve to. Each directory is checked once even
// when several targets share it.
func RunAll(req Request) []Result {
	var results []Result

	if strings.TrimSpace(req.StateDir) != "" {
		results = append(results, CheckDirectoryAccess("State directory", req.StateDir))
	}

	if !req.InPlace {
		if strings.TrimSpace(req.OutputDir) != "" {
			results = append(results, CheckDirectoryAccess("Output directory", req.OutputDir))
		}
		return results
	}

	seenDirs := make(map[string]struct{})
	for _, target := range req.Targets {
		resolved, err := fileutil.ResolveTarget(target)
		if err != nil {
			results = append(results, Result{Name: "Target file", Detail: fmt.Sprintf("%s (error: %v)", target, err)})
			continue
		}
		target = resolved
		dir := filepath.Dir(target)
		if _, ok := seenDirs[dir]; !ok {
			seenDirs[dir] = struct{}{}
			results = append(results, CheckDirectoryAccess("Target directory", dir))
		}
		results = append(results, CheckFileWritable("Target file", target))
	}
	return results
}

// FirstFailure returns the first failed result, if any.
func FirstFailure(results []Result) (Result, bool) {
	for _, r := range results {
		if !r.Passed {
			return r, true
		}
	}
	return Result{}, false
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFileWritable verifies that path is an existing regular file the
// current user may overwrite.
func CheckFileWritable(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a regular file)", path)}
	}
	if err := unix.Access(path, unix.W_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
}
