package ronlog

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/ariel-frischer/ronlog/internal/errors"
	"github.com/ariel-frischer/ronlog/internal/fragment"
	"github.com/ariel-frischer/ronlog/internal/fsio"
	"github.com/ariel-frischer/ronlog/internal/version"
)

// Init writes a fresh aggregate log to path. An existing file is only
// replaced when force is set; the returned flag reports whether the file
// was absent before the call.
func Init(path, introduction string, hasIntroduction, force bool) (bool, error) {
	absent := !fsio.Exists(path)
	if absent || force {
		doc := Encode(New(introduction, hasIntroduction))
		if err := fsio.WriteFileAtomic(path, []byte(doc)); err != nil {
			return absent, err
		}
	}
	return absent, nil
}

// Load reads and decodes the aggregate log at path.
func Load(path string) (*Log, error) {
	src, err := fsio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Decode(src)
	if err != nil {
		var encErr *errors.EncodingError
		if stderrors.As(err, &encErr) && encErr.Path == "" {
			encErr.Path = path
		}
		return nil, err
	}
	return l, nil
}

// Save encodes the aggregate log and replaces path atomically.
func Save(l *Log, path string) error {
	return fsio.WriteFileAtomic(path, []byte(Encode(l)))
}

// AssembleResult reports what a release sweep did.
type AssembleResult struct {
	// Consumed lists the fragment files merged into the section, in
	// processing order.
	Consumed []string
	// Failed maps fragment files to their decode errors. Failed files
	// stay on disk and do not stop the sweep.
	Failed map[string]error
}

// Assemble collects all machine-readable fragments in dir, merges them in
// file name order (the canonical names sort chronologically), and inserts
// the merged fragment into the aggregate log at logPath under the target
// version. Consumed fragment files are deleted only after the updated
// aggregate has been written. A missing aggregate file is created first.
func Assemble(dir, logPath string, target version.Version, now time.Time) (*AssembleResult, error) {
	if !fsio.Exists(logPath) {
		if _, err := Init(logPath, "", false, false); err != nil {
			return nil, err
		}
	}

	l, err := Load(logPath)
	if err != nil {
		return nil, err
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.ron"))
	if err != nil {
		return nil, &errors.IoError{Op: "read", Path: dir, Err: err}
	}

	result := &AssembleResult{Failed: make(map[string]error)}
	merged := fragment.New()

	for _, path := range paths {
		// The aggregate itself may live in the fragment directory.
		if filepath.Clean(path) == filepath.Clean(logPath) {
			continue
		}
		src, err := fsio.ReadFile(path)
		if err != nil {
			result.Failed[path] = err
			continue
		}
		frag, err := fragment.DecodeRON(src)
		if err != nil {
			logger.Warnf("skipping fragment %s: %v", path, err)
			result.Failed[path] = err
			continue
		}
		merged.Merge(frag)
		result.Consumed = append(result.Consumed, path)
	}

	if len(result.Consumed) == 0 {
		return result, nil
	}

	released := now.Format(time.RFC3339)
	if err := l.Insert(target, released, merged); err != nil {
		return result, err
	}
	if err := Save(l, logPath); err != nil {
		return result, err
	}

	for _, path := range result.Consumed {
		if err := os.Remove(path); err != nil {
			logger.Warnf("cannot remove consumed fragment %s: %v", path, err)
		}
	}

	logger.Debugf("assembled %d fragments into %s under version %s",
		len(result.Consumed), logPath, target)
	return result, nil
}
