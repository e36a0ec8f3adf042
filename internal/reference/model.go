package reference

// WordList описывает один yaml-справочник зарезервированных слов
type WordList struct {
	Name  string   `yaml:"name"`
	Words []string `yaml:"words"`
}
