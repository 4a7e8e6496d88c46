package models

// QuestionBank is a named, versioned list of questions in display order
type QuestionBank struct {
	Name      string     `yaml:"name" json:"name"`
	Version   int        `yaml:"version" json:"version"`
	Questions []Question `yaml:"questions" json:"questions"`

	// Source is the file the bank was loaded from, empty for the embedded bank
	Source string `yaml:"-" json:"-"`
}
