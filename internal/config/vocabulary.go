package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Vocabulary is the skill and education keyword configuration supplied by
// the storage/configuration collaborator: canonical skill names with their
// alias surface forms, and degree keywords per ordinal education level.
type Vocabulary struct {
	Skills    map[string][]string `mapstructure:"skills"`
	Education map[string][]string `mapstructure:"education"`
}

// LoadVocabulary reads a YAML vocabulary file, falling back to the built-in
// default when no path is configured.
func LoadVocabulary(path string) (*Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading skill vocabulary %s: %w", path, err)
	}

	var vocab Vocabulary
	if err := v.Unmarshal(&vocab); err != nil {
		return nil, fmt.Errorf("parsing skill vocabulary %s: %w", path, err)
	}
	if len(vocab.Skills) == 0 {
		return nil, fmt.Errorf("skill vocabulary %s defines no skills", path)
	}
	if len(vocab.Education) == 0 {
		vocab.Education = DefaultVocabulary().Education
	}
	return &vocab, nil
}

// DefaultVocabulary covers the common technical skill space. Operators are
// expected to extend it per requisition domain; unknown skills still pass
// through normalization as their own canonical form.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Skills: map[string][]string{
			// Languages
			"python":     {"py"},
			"java":       {},
			"javascript": {"js", "ecmascript"},
			"typescript": {"ts"},
			"go":         {"golang"},
			"c++":        {"cpp"},
			"c#":         {"csharp"},
			"php":        {},
			"ruby":       {},
			"rust":       {},
			"kotlin":     {},
			"swift":      {},
			"scala":      {},
			"sql":        {},

			// Web
			"react":   {"reactjs", "react.js"},
			"angular": {"angularjs"},
			"vue":     {"vuejs", "vue.js"},
			"node.js": {"node", "nodejs"},
			"django":  {},
			"flask":   {},
			"spring":  {"spring boot"},
			"html":    {"html5"},
			"css":     {"css3"},

			// Databases
			"postgresql":    {"postgres"},
			"mysql":         {},
			"mongodb":       {"mongo"},
			"redis":         {},
			"elasticsearch": {"elastic search"},

			// Cloud and infrastructure
			"aws":        {"amazon web services"},
			"azure":      {},
			"gcp":        {"google cloud", "google cloud platform"},
			"docker":     {},
			"kubernetes": {"k8s"},
			"terraform":  {},
			"jenkins":    {},
			"ansible":    {},

			// Data
			"machine learning": {"ml"},
			"deep learning":    {},
			"tensorflow":       {},
			"pytorch":          {},
			"pandas":           {},
			"numpy":            {},
			"data analysis":    {"data analytics"},

			// Tools
			"git":   {"github", "gitlab"},
			"jira":  {},
			"linux": {},
		},
		Education: map[string][]string{
			"associate": {"associate degree", "associate's", "diploma"},
			"bachelor": {
				"bachelor", "bachelors", "bachelor's", "b.tech", "btech",
				"b.sc", "bsc", "b.e.", "bca", "bba", "undergraduate degree",
			},
			"master": {
				"master", "masters", "master's", "m.tech", "mtech",
				"m.sc", "msc", "mba", "mca", "m.s.", "graduate degree",
			},
			"doctorate": {"phd", "ph.d", "doctorate", "doctoral", "d.phil"},
		},
	}
}
