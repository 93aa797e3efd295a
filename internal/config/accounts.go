// Admin-account list loading.
//
// The account list is operator data, not tool configuration: a YAML file
// searched by name in one or more directories, each contributing its
// admin_accounts entries in file order. A malformed file fails the whole
// load so a typo can never silently yield a shorter account list.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	cerrors "github.com/ethz-iam/iamctl/internal/errors"
)

// AdminAccount is one administrator identity from the account list.
// Fields beyond the username pass through untouched.
type AdminAccount struct {
	Username string                 `yaml:"username" json:"username"`
	Extra    map[string]interface{} `yaml:",inline" json:"extra,omitempty"`
}

type accountFile struct {
	AdminAccounts []AdminAccount `yaml:"admin_accounts"`
}

// LoadAdminAccounts searches each path for filename and returns the
// concatenated admin_accounts entries in discovery order. Duplicates are
// preserved. A nil or empty path list defaults to the home directory.
// Missing files are skipped; a file that exists but does not parse aborts
// the load with a config parse error and no partial result.
func LoadAdminAccounts(paths []string, filename string) ([]AdminAccount, error) {
	if len(paths) == 0 {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		paths = []string{homeDir}
	}

	var accounts []AdminAccount
	for _, path := range paths {
		absFilename := filepath.Join(path, filename)

		data, err := os.ReadFile(absFilename)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", absFilename, err)
		}

		var parsed accountFile
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, cerrors.NewConfigParseError(absFilename, err)
		}

		accounts = append(accounts, parsed.AdminAccounts...)
	}

	return accounts, nil
}
