package logging

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const logFilePrefix = "csf-dashboard_"

type logFile struct {
	path    string
	modTime time.Time
}

// rotate keeps at most keep dashboard log files in dir, removing the least
// recently modified first. Other files in dir are left alone.
func rotate(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	files, err := listLogFiles(dir)
	if err != nil {
		return err
	}
	excess := len(files) - keep
	if excess <= 0 {
		return nil
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].path < files[j].path
		}
		return files[i].modTime.Before(files[j].modTime)
	})
	for _, f := range files[:excess] {
		_ = os.Remove(f.path)
	}
	return nil
}

func listLogFiles(dir string) ([]logFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []logFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || filepath.Ext(name) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed since ReadDir.
			continue
		}
		files = append(files, logFile{path: filepath.Join(dir, name), modTime: info.ModTime()})
	}
	return files, nil
}
