package config

import "github.com/mkravec/cennik/internal/section"

// DefaultConfig returns configuration with sensible defaults. The sample
// provider mirrors the section layout of a typical Slovak price-list
// document; real deployments replace it in config.yaml.
func DefaultConfig() *Config {
	return &Config{
		Providers: map[string]ProviderCfg{
			"telekom": {
				Layout: "auto",
				Sections: []section.Spec{
					{Key: "internet", Title: "INTERNET"},
					{Key: "tv", Title: "TELEVÍZIA"},
					{Key: "mobile", Title: "MOBILNÉ SLUŽBY"},
					{Key: "fixed", Title: "PEVNÁ LINKA"},
					{Key: "discounts", Title: "ZĽAVY A AKCIE"},
				},
			},
		},
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Storage: StorageCfg{},
	}
}
