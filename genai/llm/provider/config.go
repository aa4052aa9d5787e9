package provider

// Config is a struct that represents a provider with an ID and options.
type Config struct {
	ID          string  `yaml:"id" json:"id"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Options     Options `yaml:"options" json:"options"`
}

// Configs is a slice of Config pointers.
type Configs []*Config

// Find is a method that searches for a provider by its ID in the Configs slice.
func (m Configs) Find(id string) *Config {
	for _, cfg := range m {
		if cfg.ID == id {
			return cfg
		}
	}
	return nil
}

// Ensure returns the config for id, appending an empty one when missing.
func (m *Configs) Ensure(id string) *Config {
	if cfg := m.Find(id); cfg != nil {
		return cfg
	}
	cfg := &Config{ID: id}
	*m = append(*m, cfg)
	return cfg
}
