// Package app is the composition root of jot.
//
// Run performs, in order:
//
//  1. Load ~/.config/jot/config.toml (or -config), apply the -url override
//  2. Open the zap file logger at log_file
//  3. Build the todoapi.Client with the configured timeout and list mode
//  4. Create the session.Session shared by both front ends
//  5. Run a single cli command when arguments were given, otherwise start the
//     Bubble Tea UI with the saved preferences
//
// Nothing polls in the background. The list is loaded when the session
// starts, after every successful mutation, and on explicit refresh.
package app
