package normalize

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"wfsort/internal/document"
)

func objectWith(pairs ...[2]interface{}) *document.Object {
	obj := document.NewObject()
	for _, p := range pairs {
		obj.Set(p[0].(string), p[1])
	}
	return obj
}

func TestProfileDenylists(t *testing.T) {
	profiles := DefaultProfiles()

	tests := []struct {
		kind Kind
		keys []string
	}{
		{KindItem, []string{
			"title", "sortOrder", "highRisk", "highRiskStatisticMethod",
			"highRiskStatisticPeriod", "highRiskThreshold", "statisticMethod",
			"statisticPeriod", "comment", "reason", "ignoreProcessingStateRegistry",
			"verboseMode", "disableManualExecution", "groupId", "forceLoad",
			"eagerScriptExecution", "useScripts",
		}},
		{KindDependency, []string{
			"groupId", "sortKey", "layoutPreset", "layoutSettings", "highRisk",
			"highRiskStatisticMethod", "highRiskStatisticPeriod", "highRiskThreshold",
			"statisticMethod", "statisticPeriod", "comment", "reason",
			"ignoreProcessingStateRegistry", "verboseMode", "disableManualExecution",
			"forceLoad", "eagerScriptExecution", "useScripts",
		}},
		{KindGroup, []string{
			"layoutPreset", "layoutSettings", "highRisk", "highRiskStatisticMethod",
			"highRiskStatisticPeriod", "highRiskThreshold", "statisticMethod",
			"statisticPeriod", "comment", "reason", "ignoreProcessingStateRegistry",
			"verboseMode", "disableManualExecution", "groupId", "forceLoad",
			"eagerScriptExecution", "useScripts",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			profile := profiles.Profile(tt.kind)
			entity := document.NewObject()
			entity.Set("name", "keep")
			for _, key := range tt.keys {
				entity.Set(key, "transient")
			}

			profile.Clean(entity)

			for _, key := range tt.keys {
				if _, ok := entity.Get(key); ok {
					t.Errorf("%s: key %q survived cleanup", tt.kind, key)
				}
				if !profile.Removes(key) {
					t.Errorf("%s: denylist is missing %q", tt.kind, key)
				}
			}
			if _, ok := entity.Get("name"); !ok {
				t.Errorf("%s: cleanup dropped a non-denylisted key", tt.kind)
			}
		})
	}
}

func TestProfileCleanMissingKeys(t *testing.T) {
	entity := objectWith([2]interface{}{"name", "x"})
	DefaultProfiles().Profile(KindItem).Clean(entity)
	if entity.Len() != 1 {
		t.Errorf("cleanup of an already-clean entity changed it: keys = %v", entity.Keys())
	}
}

func TestDescriptionRemoval(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		remove bool
	}{
		{"null removed", nil, true},
		{"empty string kept", "", false},
		{"text kept", "a description", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity := objectWith(
				[2]interface{}{"name", "n"},
				[2]interface{}{"description", tt.value},
			)
			DefaultProfiles().Profile(KindItem).Clean(entity)
			_, present := entity.Get("description")
			if present == tt.remove {
				t.Errorf("description present = %v, want removed = %v", present, tt.remove)
			}
		})
	}
}

func TestPassActionsToChildrenRemoval(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		remove bool
	}{
		{"false removed", false, true},
		{"null removed", nil, true},
		{"zero removed", json.Number("0"), true},
		{"empty string removed", "", true},
		{"true kept", true, false},
		{"one kept", json.Number("1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := objectWith(
				[2]interface{}{"id", "g"},
				[2]interface{}{"passActionsToChildren", tt.value},
			)
			DefaultProfiles().Profile(KindGroup).Clean(group)
			_, present := group.Get("passActionsToChildren")
			if present == tt.remove {
				t.Errorf("passActionsToChildren present = %v, want removed = %v", present, tt.remove)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		profiles, err := LoadOverrides(filepath.Join(t.TempDir(), OverridesFile))
		if err != nil {
			t.Fatalf("LoadOverrides() error = %v", err)
		}
		if !profiles.Profile(KindGroup).Removes("comment") {
			t.Error("defaults missing built-in denylist key")
		}
	})

	t.Run("extends denylists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), OverridesFile)
		decl := `
[group]
remove = ["legacyColor"]

[item]
remove = ["draftState", "previewUrl"]
`
		if err := os.WriteFile(path, []byte(decl), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		profiles, err := LoadOverrides(path)
		if err != nil {
			t.Fatalf("LoadOverrides() error = %v", err)
		}

		group := objectWith(
			[2]interface{}{"id", "g"},
			[2]interface{}{"legacyColor", "red"},
			[2]interface{}{"comment", "still transient"},
		)
		profiles.Profile(KindGroup).Clean(group)
		if _, ok := group.Get("legacyColor"); ok {
			t.Error("override key legacyColor survived cleanup")
		}
		if _, ok := group.Get("comment"); ok {
			t.Error("built-in denylist key comment survived cleanup")
		}
		if !profiles.Profile(KindItem).Removes("draftState") {
			t.Error("item override not applied")
		}
	})

	t.Run("malformed file errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), OverridesFile)
		if err := os.WriteFile(path, []byte("[group\nremove = ?"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if _, err := LoadOverrides(path); err == nil {
			t.Error("LoadOverrides() should error on malformed TOML")
		}
	})
}
