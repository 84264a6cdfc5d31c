// Package app is the composition root of the storefront.
//
// Run loads the configuration, opens the log file, the local store and the
// remote adapters, initializes the state manager and hands everything to the
// UI, which blocks until the user quits or the context is cancelled.
//
//	Run()
//	  ├─> config.Load()          TOML config + env overrides
//	  ├─> newLogger()            slog text handler on the log file
//	  ├─> localstore.Open()      file | sqlite
//	  ├─> openRemote()           none | rest | firestore
//	  ├─> state.New().Init()     load local state, start remote sync
//	  ├─> recommend.NewService() Gemini generator + credential holder
//	  └─> ui.Run()               Bubble Tea program (blocks)
//
// Fatal at start-up: a malformed config, an unknown local driver, an unusable
// data directory or log file. A remote that fails to open is logged and the
// store runs local-only.
//
// Shutdown runs in reverse: subscriptions stop before the remote connection
// closes, and the local store closes last.
package app
