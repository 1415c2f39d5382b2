package preflight

import (
	"fmt"
	"os"

	"vidsort/internal/config"
	"vidsort/internal/deps"
)

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
	if err := checkReadWrite(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckPreviewTool reports whether the configured viewer is on PATH. A missing
// viewer only degrades the session, so the result is optional.
func CheckPreviewTool(cfg *config.Config) Result {
	status := deps.CheckBinaries([]deps.Requirement{deps.PreviewRequirement(cfg)})[0]
	result := Result{Name: status.Name, Optional: true, Passed: status.Available}
	if status.Available {
		result.Detail = status.Path
	} else {
		result.Detail = status.Detail + "; files will be offered without a preview"
	}
	return result
}
