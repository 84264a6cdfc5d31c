// Package config loads the storefront configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/storefront/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/storefront/config.toml
//   - Data directory: ~/.local/share/storefront
//   - Local driver: file (one JSON file per key)
//   - Log file: ~/.local/share/storefront/storefront.log
//   - Remote: none (local-only mode)
//   - AI model: gemini-2.5-flash, key from $GEMINI_API_KEY
//
// # TOML Format
//
//	data_dir = "~/.local/share/storefront"
//	local_driver = "sqlite"           # file | sqlite
//	owner_password = "$2a$10$..."     # plain text or bcrypt hash
//	log_file = "~/.local/share/storefront/storefront.log"
//	log_level = "info"                # debug | info | warn | error
//
//	[remote]
//	driver = "firestore"              # "" | rest | firestore
//	url = "http://127.0.0.1:8088"     # rest
//	poll_seconds = 2                  # rest
//	project_id = "my-shop"            # firestore
//	credentials_file = "~/keys/shop.json"
//	items_collection = "books"
//	content_document = "pageContent/home"
//
//	[ai]
//	model = "gemini-2.5-flash"
//	api_key_env = "GEMINI_API_KEY"
//
// Every field is optional. Tilde expansion is performed on paths.
//
// # Environment
//
// STOREFRONT_OWNER_PASSWORD overrides owner_password. The AI key is never
// stored in the file; it is read from the variable named by api_key_env.
//
// # Error Handling
//
// A missing file is not an error. Invalid TOML, an unknown remote driver or
// an unknown log level is, so a typo never silently drops the remote.
package config
