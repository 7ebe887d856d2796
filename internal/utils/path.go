package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppDirName names the per-user config directory.
const AppDirName = "wordtree"

// PathResolver finds the config directory and the word list file regardless
// of where the binary is started from
type PathResolver struct {
	executableDir string
	workDir       string
	homeDir       string
	configDir     string
}

// NewPathResolver determines the executable, working, home and config dirs
func NewPathResolver() (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(execDir); err == nil {
		execDir = resolved
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: execDir,
		workDir:       workDir,
		homeDir:       homeDir,
		configDir:     configDirFor(runtime.GOOS, homeDir, os.Getenv),
	}
	log.Debugf("PathResolver initialized: execDir=%s, workDir=%s, configDir=%s", execDir, workDir, pr.configDir)
	return pr, nil
}

// configDirFor returns the platform config directory for the app
func configDirFor(goos, homeDir string, getenv func(string) string) string {
	switch goos {
	case "windows":
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppDirName)
	case "darwin", "linux", "freebsd", "openbsd", "netbsd":
		if configHome := getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppDirName)
		}
		return filepath.Join(homeDir, ".config", AppDirName)
	default:
		return filepath.Join(homeDir, "."+AppDirName)
	}
}

// ConfigDir returns the config directory
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// DictCandidates lists where a word list named by the user may live, in
// order of preference
func (pr *PathResolver) DictCandidates(userPath string) []string {
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}
	return []string{
		filepath.Join(pr.workDir, userPath),
		filepath.Join(pr.executableDir, userPath),
		filepath.Join(filepath.Dir(pr.executableDir), userPath),
		filepath.Join(pr.configDir, userPath),
	}
}

// ResolveDictPath returns the first existing candidate for userPath.
// When none exists, the working-dir candidate is returned so a new word list
// gets created where the user is.
func (pr *PathResolver) ResolveDictPath(userPath string) string {
	candidates := pr.DictCandidates(userPath)
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			log.Debugf("Found word list: %s", path)
			return path
		}
		log.Debugf("Word list candidate not found: %s", path)
	}
	return candidates[0]
}

// GetConfigPath returns the full path for a config file, falling back to
// other writable locations when the config dir cannot be used
func (pr *PathResolver) GetConfigPath(filename string) string {
	dirs := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, "."+AppDirName),
		pr.executableDir,
		filepath.Join(os.TempDir(), AppDirName),
	}
	for i, dir := range dirs {
		if CheckDirStatus(dir).Writable {
			if i > 0 {
				log.Warnf("Using fallback config location: %s", dir)
			}
			return filepath.Join(dir, filename)
		}
	}
	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}
