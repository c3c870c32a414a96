package dashboard

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	Tab           key.Binding
	Search        key.Binding
	NextType      key.Binding
	PrevType      key.Binding
	NextLocation  key.Binding
	PrevLocation  key.Binding
	ClearFilters  key.Binding
	NextPage      key.Binding
	PrevPage      key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	Notifications key.Binding
	ExportCSV     key.Binding
	ExportXLSX    key.Binding
	ExportPDF     key.Binding
	Regenerate    key.Binding
	Close         key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Tab:           key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "view")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextType:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t/T", "type")),
		PrevType:      key.NewBinding(key.WithKeys("T")),
		NextLocation:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l/L", "location")),
		PrevLocation:  key.NewBinding(key.WithKeys("L")),
		ClearFilters:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		NextPage:      key.NewBinding(key.WithKeys("right", "]"), key.WithHelp("←/→", "page")),
		PrevPage:      key.NewBinding(key.WithKeys("left", "[")),
		ScrollUp:      key.NewBinding(key.WithKeys("up", "k")),
		ScrollDown:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/k", "scroll")),
		Notifications: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "alerts")),
		ExportCSV:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e/x/P", "export")),
		ExportXLSX:    key.NewBinding(key.WithKeys("x")),
		ExportPDF:     key.NewBinding(key.WithKeys("P")),
		Regenerate:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "regen")),
		Close:         key.NewBinding(key.WithKeys("esc", "enter", "n")),
	}
}

// footerKeys lists the bindings shown in the footer, in order.
func (k keyMap) footerKeys() []key.Binding {
	return []key.Binding{
		k.Quit, k.Tab, k.Search, k.NextType, k.NextLocation, k.ClearFilters,
		k.NextPage, k.ScrollDown, k.Notifications, k.ExportCSV, k.Regenerate,
	}
}
