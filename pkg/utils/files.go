package utils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"gostack/pkg/lang"
)

// GetPathInfo returns the cleaned absolute path of relPath and the
// directory that holds it.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", errors.Wrapf(err, "resolving %s", relPath)
	}
	return fullPath, filepath.Dir(fullPath), nil
}

// ReadSource loads a script. A missing file is reported as
// lang.SourceFileNotFound; other failures are wrapped with the path.
func ReadSource(relPath string) (src string, fullPath string, err error) {
	if relPath == "" {
		return "", "", &lang.Error{Kind: lang.NoSourceFile}
	}
	fullPath, _, err = GetPathInfo(relPath)
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fullPath, lang.NewSourceFileNotFound(relPath)
		}
		return "", fullPath, errors.Wrapf(err, "reading %s", fullPath)
	}
	return string(data), fullPath, nil
}
