package pipeline

import (
	"errors"
	"io/fs"

	"github.com/BurntSushi/toml"

	apperr "github.com/matzehuels/bracketview/pkg/errors"
)

// LoadOptionsFile reads pipeline options from a TOML file:
//
//	style   = "dark"
//	formats = ["svg", "png"]
//	winners = true
//	row_height = 100
//
// Unknown keys are rejected so typos do not pass silently. Fields that are
// absent keep their zero value and receive defaults later; gaps and the
// margin written as 0 stay 0.
func LoadOptionsFile(path string) (Options, error) {
	if err := apperr.ValidatePath(path); err != nil {
		return Options{}, err
	}
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if errors.Is(err, fs.ErrNotExist) {
		return Options{}, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "options file %s does not exist", path)
	}
	if err != nil {
		return Options{}, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "options file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, apperr.New(apperr.ErrCodeInvalidFormat, "options file %s: unknown key %q", path, undecoded[0].String())
	}
	for key := range zeroableKeys {
		if md.IsDefined(key) {
			opts.KeepZero(key)
		}
	}
	return opts, nil
}
