package normalize

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// OverridesFile is the optional per-project profile override file, looked up
// next to the input document.
const OverridesFile = "wfsort.toml"

// overridesDecl mirrors the wfsort.toml schema:
//
//	[group]
//	remove = ["legacyColor"]
//	[item]
//	remove = ["draftState"]
type overridesDecl struct {
	Group      overrideSection `toml:"group"`
	Item       overrideSection `toml:"item"`
	Dependency overrideSection `toml:"dependency"`
}

type overrideSection struct {
	Remove []string `toml:"remove"`
}

// LoadOverrides reads a profile override file and returns the default
// profiles extended with its extra denylist keys. A missing file yields the
// plain defaults; a malformed file is an error.
func LoadOverrides(path string) (*ProfileSet, error) {
	profiles := DefaultProfiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return profiles, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var decl overridesDecl
	if err := toml.Unmarshal(data, &decl); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	profiles.Extend(KindGroup, decl.Group.Remove)
	profiles.Extend(KindItem, decl.Item.Remove)
	profiles.Extend(KindDependency, decl.Dependency.Remove)
	return profiles, nil
}
