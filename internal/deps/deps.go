// Package deps reports whether the external programs vidsort shells out to
// are installed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"vidsort/internal/config"
)

// Requirement defines an external dependency vidsort relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		results = append(results, status)
	}
	return results
}

// PreviewRequirement describes the configured preview viewer. Preview is
// best-effort, so the requirement is always optional.
func PreviewRequirement(cfg *config.Config) Requirement {
	return Requirement{
		Name:        "Preview viewer",
		Command:     cfg.Preview.Command,
		Description: "Opens each video before prompting",
		Optional:    true,
	}
}
