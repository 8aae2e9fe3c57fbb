package phpconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/phpedit/cmds"
	"github.com/reusee/phpedit/configs"
	"github.com/reusee/phpedit/logs"
	"github.com/spf13/afero"
)

//go:embed schema.cue
var schema string

var configFlag = cmds.Collect[string]("-config", "read settings from this cue file before the default locations")

var filenames = []string{
	"phpedit.cue",
	".phpedit.cue",
}

// ConfigFiles lists config files from the most to the least specific.
func ConfigFiles(fs afero.Fs, explicit []string) []string {
	paths := append([]string(nil), explicit...)

	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if ok, err := afero.Exists(fs, path); err == nil && ok {
				paths = append(paths, path)
			}
		}
	}
	return paths
}

func (Module) ConfigsLoader(
	logger logs.Logger,
	fs afero.Fs,
) configs.Loader {
	paths := ConfigFiles(fs, *configFlag)
	if len(paths) > 0 {
		logger.Debug("config files",
			"paths", paths,
		)
	}
	return configs.NewLoader(fs, paths, schema)
}
