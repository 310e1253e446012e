// internal/nav/menu.go
package nav

import (
	"html/template"
	"io"
	"strings"
	"sync"
)

// Entry is one navigation link, optionally with a dropdown of children.
type Entry struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Href     string  `json:"href"`
	Hidden   bool    `json:"hidden"`
	Active   bool    `json:"active,omitempty"`
	Children []Entry `json:"children,omitempty"`
}

// Menu is the dashboard header navigation.
// It is the Surface the Controller drives and is safe for concurrent use.
type Menu struct {
	mu      sync.RWMutex
	entries []Entry
}

var _ Surface = (*Menu)(nil)

func NewMenu(entries []Entry) *Menu {
	return &Menu{entries: cloneEntries(entries)}
}

// DefaultEntries is the device dashboard layout. The sensors group
// carries a single dropdown entry for the designated module.
func DefaultEntries(groupID, entryID, module string) []Entry {
	return []Entry{
		{ID: "nav-home", Label: "Home", Href: "/"},
		{
			ID:    groupID,
			Label: "Sensors",
			Href:  "/sensors",
			Children: []Entry{
				{ID: entryID, Label: module, Href: "/sensors/" + strings.ToLower(module)},
			},
		},
		{ID: "nav-system", Label: "System", Href: "/system"},
		{ID: "nav-configuration", Label: "Configuration", Href: "/configuration"},
		{ID: "nav-update", Label: "Update", Href: "/update"},
		{ID: "nav-api", Label: "API", Href: "/api"},
	}
}

// SetHidden sets visibility of the entry with id. Unknown ids are ignored.
func (m *Menu) SetHidden(id string, hidden bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	setHidden(m.entries, id, hidden)
}

func setHidden(entries []Entry, id string, hidden bool) bool {
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Hidden = hidden
			return true
		}
		if setHidden(entries[i].Children, id, hidden) {
			return true
		}
	}
	return false
}

// Hidden reports whether the entry with id is hidden.
func (m *Menu) Hidden(id string) (hidden bool, found bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return findHidden(m.entries, id)
}

func findHidden(entries []Entry, id string) (bool, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e.Hidden, true
		}
		if h, ok := findHidden(e.Children, id); ok {
			return h, true
		}
	}
	return false, false
}

// Entries returns a copy of the menu with Active marked for currentPath.
func (m *Menu) Entries(currentPath string) []Entry {
	m.mu.RLock()
	out := cloneEntries(m.entries)
	m.mu.RUnlock()

	markActive(out, currentPath)
	return out
}

// markActive applies the dashboard highlight rules:
// exact match; any /sensors* page highlights Sensors;
// a child page (with or without .html) highlights the child and its parent.
func markActive(entries []Entry, path string) {
	for i := range entries {
		e := &entries[i]
		if path == e.Href {
			e.Active = true
		}
		if e.Href == "/sensors" && strings.HasPrefix(path, "/sensors") {
			e.Active = true
		}
		for j := range e.Children {
			c := &e.Children[j]
			if path == c.Href || path == c.Href+".html" {
				c.Active = true
				e.Active = true
			}
		}
	}
}

func cloneEntries(in []Entry) []Entry {
	if in == nil {
		return nil
	}
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = e
		out[i].Children = cloneEntries(e.Children)
	}
	return out
}

var headerTmpl = template.Must(template.New("header").Parse(`<nav class="nav">
<ul class="nav-menu" id="nav-menu">
{{- range .}}
<li class="nav-item{{if .Children}} dropdown{{end}}" id="{{.ID}}"{{if .Hidden}} style="display:none"{{end}}>
<a class="nav-link{{if .Active}} active{{end}}" href="{{.Href}}">{{.Label}}</a>
{{- if .Children}}
<ul class="dropdown-menu">
{{- range .Children}}
<li{{if .Hidden}} style="display:none"{{end}}><a class="dropdown-link{{if .Active}} active{{end}}" id="{{.ID}}" href="{{.Href}}">{{.Label}}</a></li>
{{- end}}
</ul>
{{- end}}
</li>
{{- end}}
</ul>
</nav>
`))

// Render writes the header include for currentPath.
func (m *Menu) Render(w io.Writer, currentPath string) error {
	return headerTmpl.Execute(w, m.Entries(currentPath))
}
