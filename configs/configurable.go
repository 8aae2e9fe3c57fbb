package configs

import "errors"

// Configurable is a setting type that knows its key in config files.
type Configurable interface {
	ConfigKey() string
}

// Lookup decodes the setting of type T, reporting whether any file sets it.
func Lookup[T Configurable](loader Loader) (ret T, ok bool, err error) {
	err = loader.AssignFirst(ret.ConfigKey(), &ret)
	if errors.Is(err, ErrValueNotFound) {
		return ret, false, nil
	}
	if err != nil {
		return ret, false, err
	}
	return ret, true, nil
}
