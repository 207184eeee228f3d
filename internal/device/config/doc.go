// Package config loads the smokectl device configuration.
//
// The file is TOML and lives at ~/.config/smokefree/device.toml unless a path is
// given. A missing file is not an error: every field has a default.
//
//	api_url = "https://smokefree.example.com"
//	cache_path = "~/.local/share/smokefree/cache.db"
//	request_timeout = "10s"
//	log_level = "info"
//	stats_window_days = 7
//
// Paths starting with "~" are expanded to the user's home directory.
package config
