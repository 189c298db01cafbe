// Package tui implements the terminal user interface for the uplink activation
// portal.
//
// The portal is a full-screen Bubble Tea program. AppModel owns a
// flow.Controller and does three jobs: it maps key presses to flow events, it
// turns the controller's effects into commands (telemetry fetch, ticks, settle
// and copy reset), and it renders the controller snapshot. It holds no flow
// state of its own beyond the menu cursor, the form inputs and the timestamps
// of log lines.
//
// # Screens
//
//   - Landing: create account or log in
//   - Signup / Login: credential form (password masked)
//   - Post-login choice: already paid or not paid
//   - Provisioning: spinner, progress bar and telemetry log
//   - Payment pending: notice with the amount label
//   - Payment: payment reference with a copy action and a decorative satellite
//   - Validation: transaction protocol id
//
// Every screen is wrapped by RenderApplicationContainer, which adds the header
// (with the back hint when back navigation is available), the tagline and the
// context-sensitive help footer.
//
// # Usage Example
//
//	app := tui.NewAppModel(tui.Options{
//	    Source: telemetry.NewSource(provider),
//	})
//	program := tea.NewProgram(app, tea.WithAltScreen())
//
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
package tui
