package tui

import "github.com/charmbracelet/bubbles/key"

// menuKeyMap is used on screens that present a vertical choice.
type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	First  key.Binding
	Second key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.First, k.Second},
		{k.Back, k.Quit},
	}
}

// formKeyMap is used on the signup and login forms.
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Back   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Submit},
		{k.Back},
	}
}

// pendingKeyMap is used on the payment-pending notice.
type pendingKeyMap struct {
	Pay  key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k pendingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pay, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k pendingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Pay, k.Back, k.Quit}}
}

// paymentKeyMap is used on the payment-key panel.
type paymentKeyMap struct {
	Copy      key.Binding
	Satellite key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k paymentKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k paymentKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Copy, k.Satellite, k.Back, k.Quit}}
}

// basicKeyMap is used on screens with no actions of their own.
type basicKeyMap struct {
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k basicKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k basicKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Back, k.Quit}}
}

// keyMaps bundles the per-screen bindings.
type keyMaps struct {
	Landing      menuKeyMap
	Choice       menuKeyMap
	Form         formKeyMap
	Pending      pendingKeyMap
	Payment      paymentKeyMap
	Provisioning basicKeyMap
	Validation   basicKeyMap
}

func newKeyMaps() keyMaps {
	up := key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	down := key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	sel := key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select"))
	back := key.NewBinding(key.WithKeys("esc", "left", "h"), key.WithHelp("esc", "back"))
	quit := key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))

	return keyMaps{
		Landing: menuKeyMap{
			Up:     up,
			Down:   down,
			Select: sel,
			First:  key.NewBinding(key.WithKeys("c", "1"), key.WithHelp("c", "create account")),
			Second: key.NewBinding(key.WithKeys("l", "2"), key.WithHelp("l", "log in")),
			// No back on landing; esc quits.
			Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
			Quit: quit,
		},
		Choice: menuKeyMap{
			Up:     up,
			Down:   down,
			Select: sel,
			First:  key.NewBinding(key.WithKeys("p", "1"), key.WithHelp("p", "already paid")),
			Second: key.NewBinding(key.WithKeys("n", "2"), key.WithHelp("n", "not paid")),
			Back:   back,
			Quit:   quit,
		},
		Form: formKeyMap{
			Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
			Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
			Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
			Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		},
		Pending: pendingKeyMap{
			Pay:  key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter", "make payment")),
			Back: back,
			Quit: quit,
		},
		Payment: paymentKeyMap{
			Copy:      key.NewBinding(key.WithKeys("y", "c"), key.WithHelp("y", "copy key")),
			Satellite: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "satellite")),
			Back:      back,
			Quit:      quit,
		},
		Provisioning: basicKeyMap{
			Back: key.NewBinding(key.WithDisabled()),
			Quit: quit,
		},
		Validation: basicKeyMap{
			Back: back,
			Quit: quit,
		},
	}
}
