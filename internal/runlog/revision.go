package runlog

import (
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// Revision reports the short commit hash of the git work tree containing
// the config file, so the log records which revision of the procedure set
// was executed. The second return is false when the config is not tracked.
func Revision(configPath string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(filepath.Dir(configPath), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}

	head, err := repo.Head()
	if err != nil {
		return "", false
	}

	hash := head.Hash().String()
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return hash, true
}
