// Package picker implements the file/folder picker control: the current
// value, browse and drop flows, and resource-root auto-selection.
//
// A Controller is driven from the UI goroutine only. Every change of the
// visible value goes through SetText, which stores the value and notifies the
// listener before returning.
package picker

import (
	"github.com/rs/zerolog/log"

	"filebrowser/internal/descriptor"
	"filebrowser/internal/fileinfo"
	"filebrowser/internal/notify"
	"filebrowser/internal/project"
	"filebrowser/internal/resolver"
)

// Controller owns the picker state.
type Controller struct {
	desc     *descriptor.Descriptor
	host     Host
	project  *project.Project
	settings Settings

	text     string
	notifier notify.Notifier

	rootState ResourceRootState
	// rootFlow invalidates dialog callbacks from an earlier resource-root flow
	rootFlow int

	// OnChanged is called after every SetText, before the listener. Views use
	// it to redraw; it is not part of the selection contract.
	OnChanged func(value string)
}

// New creates a controller for desc. The descriptor is shared read-only.
func New(desc *descriptor.Descriptor, host Host) *Controller {
	return &Controller{desc: desc, host: host}
}

// Init binds the controller to a project and its settings. It does not set
// any text.
func (c *Controller) Init(p *project.Project, s Settings) {
	c.project = p
	c.settings = s
}

// Text returns the current value.
func (c *Controller) Text() string {
	return c.text
}

// SetText stores value and notifies the listener. Empty values update the
// state but are not delivered.
func (c *Controller) SetText(value string) {
	c.text = value
	if c.OnChanged != nil {
		c.OnChanged(value)
	}
	c.notifier.Notify(value)
}

// SetSelectionListener registers l as the only listener and replays the
// current value to it when non-empty.
func (c *Controller) SetSelectionListener(l notify.Listener) {
	c.notifier.SetListener(l, c.text)
}

// Descriptor implements DropTarget.
func (c *Controller) Descriptor() *descriptor.Descriptor {
	return c.desc
}

// IsHiddenShown implements DropTarget.
func (c *Controller) IsHiddenShown() bool {
	return c.desc != nil && c.desc.ShowHidden
}

// DropFiles implements DropTarget; see OnFilesDropped.
func (c *Controller) DropFiles(entries []fileinfo.Entry) {
	c.OnFilesDropped(entries)
}

// OnFilesDropped accepts the first dropped entry and ignores the rest, even
// for multi-select descriptors: the control holds a single path.
func (c *Controller) OnFilesDropped(entries []fileinfo.Entry) {
	if len(entries) == 0 {
		return
	}
	if len(entries) > 1 {
		log.Debug().Int("dropped", len(entries)).Msg("picker: keeping first dropped entry")
	}
	c.accept(entries[0])
}

// OnBrowseRequested opens the chooser at the initial suggestion. Confirming
// persists the chosen path and sets it; cancelling changes nothing. A lookup
// error is returned before any chooser is shown.
func (c *Controller) OnBrowseRequested() error {
	initial, err := c.InitialSuggestion()
	if err != nil {
		return err
	}
	if c.host.Chooser == nil {
		log.Warn().Msg("picker: no chooser available")
		return nil
	}
	c.host.Chooser.Choose(c.desc, initial, func(chosen []fileinfo.Entry) {
		if len(chosen) == 0 {
			log.Debug().Msg("picker: chooser cancelled")
			return
		}
		c.accept(chosen[0])
	})
	return nil
}

// InitialSuggestion returns the entry the chooser should open at: the
// current value when it exists, otherwise the closest existing ancestor of
// the remembered directory.
func (c *Controller) InitialSuggestion() (fileinfo.Entry, error) {
	var hint fileinfo.Entry
	if c.text != "" {
		e, err := c.lookup(c.text)
		if err != nil {
			return nil, err
		}
		hint = e
	}
	if c.settings == nil {
		return hint, nil
	}
	return resolver.ResolveInitialSuggestion(hint, c.settings.LastDirectory(), c.expand, c.lookup)
}

// InitWithResourceRoot binds the controller like Init, then fills the value
// from the stored resource root or, failing that, from the module's resource
// folders: one folder is taken as is, several go to the user.
func (c *Controller) InitWithResourceRoot(p *project.Project, m *project.Module, s Settings) error {
	c.Init(p, s)
	c.rootFlow++
	flow := c.rootFlow
	c.rootState = StateInit

	if s != nil {
		root, err := s.ResourceRoot()
		if err != nil {
			return err
		}
		if root != nil {
			c.rootState = StateResolved
			c.SetText(root.CanonicalPath())
			return nil
		}
	}

	c.rootState = StateEnumerating
	var candidates []fileinfo.Entry
	if c.host.Resources != nil && m != nil {
		found, err := c.host.Resources.ResourceFolders(m)
		if err != nil {
			return err
		}
		candidates = found
	}

	switch len(candidates) {
	case 0:
		c.rootState = StateEmpty
		log.Debug().Msg("picker: no resource folders found")
	case 1:
		c.rootState = StateAutoSelected
		c.SetText(candidates[0].CanonicalPath())
	default:
		c.rootState = StateAwaitingUserChoice
		if c.host.Dialogs == nil {
			c.rootState = StateAbandoned
			log.Warn().Int("candidates", len(candidates)).Msg("picker: no dialog to choose a resource folder")
			return nil
		}
		c.host.Dialogs.ChooseResourceDir(candidates, func(choice fileinfo.Entry) {
			if flow != c.rootFlow {
				log.Debug().Msg("picker: ignoring stale resource folder choice")
				return
			}
			if choice == nil {
				c.rootState = StateAbandoned
				return
			}
			c.rootState = StateUserSelected
			c.SetText(choice.CanonicalPath())
		})
	}
	return nil
}

// ResourceRootState reports where the last resource-root flow stands.
func (c *Controller) ResourceRootState() ResourceRootState {
	return c.rootState
}

func (c *Controller) accept(e fileinfo.Entry) {
	p := e.CanonicalPath()
	if c.settings != nil {
		c.settings.SaveLastDirectory(p)
	}
	c.SetText(p)
}

func (c *Controller) lookup(p string) (fileinfo.Entry, error) {
	if c.host.Finder == nil {
		return nil, nil
	}
	return c.host.Finder.FindByPath(p)
}

func (c *Controller) expand(p string) (string, bool) {
	if c.host.Macros == nil {
		return p, true
	}
	return c.host.Macros.Expand(p)
}
