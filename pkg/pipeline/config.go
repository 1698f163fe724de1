package pipeline

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowlayout/pkg/errors"
)

// LoadOptionsFile reads Options from a TOML file. Unknown keys are rejected
// so that typos do not silently fall back to defaults. Defaults are not
// applied; callers override fields and then call ValidateAndSetDefaults.
func LoadOptionsFile(path string) (Options, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Options{}, err
	}

	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if os.IsNotExist(err) {
		return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return opts, nil
}
