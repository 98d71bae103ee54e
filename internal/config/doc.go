// Package config handles loading the energy client configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/energy/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty/non-positive, use defaults
//  5. ENERGY_API_BASE, ENERGY_DATA_DIR, ENERGY_LOG_LEVEL and ENERGY_PAGE_SIZE
//     override whatever the file said
//
// # Default Values
//
//   - API base: https://your-energy.b.goit.study/api
//   - Data directory: ~/.local/share/energy
//   - Local storage: <data_dir>/storage.db
//   - Client log: <data_dir>/energy.log
//   - Exercise page size: 10
//   - Search debounce: 350ms
//
// # TOML Format
//
//	api_base = "https://your-energy.b.goit.study/api"
//	data_dir = "~/.local/share/energy"
//	page_size = 10
//	search_debounce_ms = 350
//	request_timeout_seconds = 0
//	requests_per_second = 0
//	favorites_fan_out = 6
//	log_level = "info"
//
// Every field is optional. Tilde expansion is performed for data_dir. A zero
// request_timeout_seconds leaves API calls without a client-side timeout.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors. A missing file is not an error.
package config
