// Package conda resolves a conda installation on the host and drives it
// through its own CLI.
//
// The package has two halves:
//   - Resolver locates the conda executable, preferring the PATH and
//     falling back to an ordered list of well-known install roots. A root
//     counts only if it contains the shell activation script.
//   - Manager wraps the conda subcommands the start sequence needs:
//     listing environments, creating one with a pinned Python version,
//     installing a requirements manifest, and running the application
//     inside the environment.
//
// Shell-style activation (sourcing conda.sh, then `conda activate`) has no
// equivalent in a compiled binary; every in-environment invocation goes
// through `conda run -n <env>` instead, which yields the same interpreter
// and package visibility.
package conda
