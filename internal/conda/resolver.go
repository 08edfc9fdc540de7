package conda

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mmr-tortoise/tradectl/internal/model"
)

// activationScript is the shell-integration script, relative to the
// install root. Its presence is what qualifies a candidate directory as a
// real conda installation.
const activationScript = "etc/profile.d/conda.sh"

// Installation describes a resolved conda installation.
type Installation struct {
	// Exe is the path of the conda executable.
	Exe string

	// Root is the base installation directory, derived from Exe
	// (<root>/bin/conda) or from the candidate directory that matched.
	Root string
}

// DefaultCandidateRoots returns the ordered list of install roots probed
// when conda is not on the PATH. User-local Miniconda/Anaconda installs
// are tried before the system-wide locations.
func DefaultCandidateRoots() []string {
	var roots []string
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots,
			filepath.Join(home, "miniconda3"),
			filepath.Join(home, "anaconda3"),
		)
	}
	roots = append(roots,
		"/opt/miniconda3",
		"/opt/anaconda3",
		"/usr/local/miniconda3",
		"/usr/local/anaconda3",
	)
	return roots
}

// Resolver locates a conda installation on the host.
//
// Both fields default to the real environment (exec.LookPath and
// DefaultCandidateRoots) and exist so tests can substitute fakes.
type Resolver struct {
	// LookPath searches the executable search path. Defaults to
	// exec.LookPath.
	LookPath func(file string) (string, error)

	// CandidateRoots is the ordered list of install roots probed when the
	// PATH lookup fails.
	CandidateRoots []string
}

// NewResolver creates a Resolver backed by the real PATH and the default
// candidate roots.
func NewResolver() *Resolver {
	return &Resolver{
		LookPath:       exec.LookPath,
		CandidateRoots: DefaultCandidateRoots(),
	}
}

// Resolve returns the conda installation to use.
//
// Resolution order:
//  1. A conda executable on the PATH wins. The install root is derived
//     from the executable path (<root>/bin/conda).
//  2. Otherwise the candidate roots are probed in order; the first one
//     containing the activation script is used.
//
// If neither succeeds, a CLIError with exit code 1 is returned and the
// caller performs no further action.
func (r *Resolver) Resolve() (*Installation, error) {
	if exe, err := r.LookPath("conda"); err == nil {
		// <root>/bin/conda → strip the executable name and the bin dir.
		root := filepath.Dir(filepath.Dir(exe))
		return &Installation{Exe: exe, Root: root}, nil
	}

	for _, root := range r.CandidateRoots {
		if _, err := os.Stat(filepath.Join(root, activationScript)); err == nil {
			return &Installation{
				Exe:  filepath.Join(root, "bin", "conda"),
				Root: root,
			}, nil
		}
	}

	return nil, model.NewCLIError(model.ExitGeneralError,
		fmt.Sprintf("conda not found: not on PATH and no installation in %v", r.CandidateRoots))
}
