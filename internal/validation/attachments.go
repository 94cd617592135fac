package validation

import (
	"os"
	"path/filepath"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

// resolveAttachments makes attachment paths absolute and drops the ones
// that do not point at a regular file.
func (v *Validator) resolveAttachments(raw entities.RawEntry) ([]string, []entities.MissingAttachment) {
	var found []string
	var missing []entities.MissingAttachment

	for _, rel := range raw.AttachmentPaths {
		path := filepath.Join(v.sourceDir, rel)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}

		if isRegularFile(path) {
			found = append(found, path)
			continue
		}

		kind := entities.AttachmentKindFromPath(rel)
		v.logger.Warnf("Journey export is missing %s attachment: Can't find %s", kind, path)
		missing = append(missing, entities.MissingAttachment{
			SourcePath:     raw.SourcePath,
			EntryID:        raw.ID,
			AttachmentPath: path,
			Kind:           kind,
		})
	}

	return found, missing
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
