// Package cli provides the interactive console for a GOST panel.
//
// It wires the session, the API services and an interactive REPL. Typical
// flow: show the cached branding, ask for credentials when there is no
// session, then execute operator commands.
//
// Key features:
//   - login / logout / whoami / refresh / passwd
//   - nodes and tunnels: list, show, delete, start/stop tunnels
//   - operation logs, dashboard stats, system config, test e-mail, backup
//
// When the panel rejects the session, the pipeline navigates the Router to
// the login route and the REPL asks for credentials before the next prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
