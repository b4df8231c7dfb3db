package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// Environment passed to extensions, so that they open the same pantry.
const (
	EnvConfig  = "PANTRY_CONFIG"
	EnvDataDir = "PANTRY_DATA_DIR"
	EnvBackend = "PANTRY_BACKEND"
	EnvVerbose = "PANTRY_VERBOSE"
)

// RunExtension attempts to find and execute an external gro-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if there is no such extension.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "gro-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		slog.Debug("no extension", "name", name, "err", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing extension %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv resolves the global flags against the configuration, so that
// an extension does not need to read the configuration file itself.
func extensionEnv() []string {
	env := []string{EnvVerbose + "=" + strconv.FormatBool(*Verbose)}
	if *configFile != "" {
		env = append(env, EnvConfig+"="+*configFile)
	}
	cfg, err := loadConfig()
	if err != nil {
		slog.Warn("extension runs without configuration", "err", err)
		return env
	}
	return append(env, EnvDataDir+"="+cfg.DataDir, EnvBackend+"="+cfg.Backend)
}
