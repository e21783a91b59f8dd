package engine

// propertyToggle enters fullscreen by setting a boolean mpv property.
type propertyToggle struct {
	m        *MPV
	property string
}

func (p propertyToggle) Name() string { return p.property }

func (p propertyToggle) Supported() bool {
	if !p.m.running() {
		return false
	}
	_, err := p.m.getBool(p.property)
	return err == nil
}

func (p propertyToggle) Enter() error {
	_, err := p.m.sendCommand("set_property", p.property, true)
	return err
}

func (p propertyToggle) Exit() error {
	_, err := p.m.sendCommand("set_property", p.property, false)
	return err
}

// keypressToggle simulates the default fullscreen key binding.
type keypressToggle struct {
	m   *MPV
	key string
}

func (k keypressToggle) Name() string { return "keypress " + k.key }

func (k keypressToggle) Supported() bool {
	return k.m.running()
}

func (k keypressToggle) Enter() error {
	_, err := k.m.sendCommand("keypress", k.key)
	return err
}

func (k keypressToggle) Exit() error {
	return k.Enter()
}

// Fullscreen returns mpv's strategies: the fullscreen property, then the legacy fs alias
// and the f key binding, then a maximized window as presentation mode.
func (m *MPV) Fullscreen() Capabilities {
	return Capabilities{
		Standard: propertyToggle{m: m, property: "fullscreen"},
		Vendor: []Capability{
			propertyToggle{m: m, property: "fs"},
			keypressToggle{m: m, key: "f"},
		},
		Presentation: propertyToggle{m: m, property: "window-maximized"},
		Active: func() bool {
			if !m.running() {
				return false
			}
			active, err := m.getBool("fullscreen")
			return err == nil && active
		},
	}
}
