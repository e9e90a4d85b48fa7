package mcp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AllowedPathsEnv lists extra allowed directories, separated like PATH.
const AllowedPathsEnv = "EXCELEXT_ALLOWED_PATHS"

// AllowedBasePaths contains directories from which files can be accessed.
// If empty, defaults to current working directory.
var AllowedBasePaths []string

// InitAllowedPaths sets AllowedBasePaths from flags, falling back to the
// environment when no flag value is given.
func InitAllowedPaths(paths []string) {
	if len(paths) == 0 {
		paths = LoadAllowedPathsFromEnv()
	}
	AllowedBasePaths = paths
}

// LoadAllowedPathsFromEnv reads AllowedPathsEnv.
func LoadAllowedPathsFromEnv() []string {
	var paths []string
	for _, p := range filepath.SplitList(os.Getenv(AllowedPathsEnv)) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// ValidateFilePath ensures the path is safe to access.
func ValidateFilePath(requestedPath string) (string, error) {
	if requestedPath == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	// Get absolute path
	absPath, err := filepath.Abs(requestedPath)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	// Resolve symlinks to prevent bypass
	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", requestedPath)
		}
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	return checkAllowed(realPath)
}

// ValidateWritePath is ValidateFilePath for a file that may not exist yet
// when allowCreate is set; its parent directory must then resolve inside an
// allowed directory.
func ValidateWritePath(requestedPath string, allowCreate bool) (string, error) {
	if requestedPath == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	absPath, err := filepath.Abs(requestedPath)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if _, err := os.Lstat(absPath); err == nil || !allowCreate {
		return ValidateFilePath(requestedPath)
	}

	realDir, err := filepath.EvalSymlinks(filepath.Dir(absPath))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("directory not found: %s", filepath.Dir(requestedPath))
		}
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	return checkAllowed(filepath.Join(realDir, filepath.Base(absPath)))
}

func checkAllowed(realPath string) (string, error) {
	// Determine allowed base paths
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine working directory: %w", err)
	}

	basePaths := AllowedBasePaths
	if len(basePaths) == 0 {
		basePaths = []string{cwd}
	}

	// Check if path is within allowed directories
	for _, base := range basePaths {
		absBase, err := filepath.Abs(base)
		if err != nil {
			continue
		}
		realBase, err := filepath.EvalSymlinks(absBase)
		if err != nil {
			continue
		}
		if strings.HasPrefix(realPath, realBase+string(os.PathSeparator)) || realPath == realBase {
			return realPath, nil
		}
	}

	return "", fmt.Errorf("access denied: path outside allowed directories")
}
