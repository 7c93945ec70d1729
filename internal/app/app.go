// internal/app/app.go
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/skratchdot/open-golang/open"

	"github.com/llehouerou/tagdeck/internal/app/navctl"
	"github.com/llehouerou/tagdeck/internal/app/popupctl"
	"github.com/llehouerou/tagdeck/internal/config"
	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/focus"
	"github.com/llehouerou/tagdeck/internal/icons"
	"github.com/llehouerou/tagdeck/internal/keyrepeat"
	"github.com/llehouerou/tagdeck/internal/listnav"
	"github.com/llehouerou/tagdeck/internal/navigator"
	"github.com/llehouerou/tagdeck/internal/navstate"
	"github.com/llehouerou/tagdeck/internal/rename"
	"github.com/llehouerou/tagdeck/internal/router"
	"github.com/llehouerou/tagdeck/internal/state"
	"github.com/llehouerou/tagdeck/internal/tags"
	"github.com/llehouerou/tagdeck/internal/ui/filelist"
	"github.com/llehouerou/tagdeck/internal/ui/foldertree"
	"github.com/llehouerou/tagdeck/internal/ui/metaform"
)

// FolderWatcher follows the folder whose files are listed.
type FolderWatcher interface {
	Watch(dir string) error
	Wait() tea.Cmd
	Close() error
}

var _ FolderWatcher = (*navigator.Watcher)(nil)

// Disk performs the file operations of the app.
type Disk struct {
	ReadTags  func(path string) (*tags.Tag, error)
	WriteTags func(path string, t *tags.Tag) error
	Rename    func(from, to string) error
}

// DefaultDisk works on the real file system.
func DefaultDisk() Disk {
	return Disk{ReadTags: tags.Read, WriteTags: tags.Write, Rename: renameNoReplace}
}

// Desktop hands paths to the rest of the desktop.
type Desktop struct {
	Copy func(text string) error
	Open func(path string) error
}

// DefaultDesktop uses the system clipboard and default applications.
func DefaultDesktop() Desktop {
	return Desktop{Copy: clipboard.WriteAll, Open: open.Start}
}

// Options overrides parts of the environment. The zero value is valid.
type Options struct {
	// Root is the folder to browse. It wins over the saved session and the
	// configured start folder.
	Root    string
	Watcher FolderWatcher
	Disk    *Disk
	Desktop *Desktop
	Log     logr.Logger
	// Now times key-downs for echo detection. Defaults to time.Now.
	Now func() time.Time
}

// Model is the root application model.
type Model struct {
	Config   *config.Config
	StateMgr state.Interface // nil when persistence is disabled
	Log      logr.Logger

	Doc     *element.Document
	Ledger  *focus.Ledger
	Machine *navstate.Machine
	Router  *router.Router
	Repeat  *keyrepeat.Controller
	Nav     *navctl.Manager

	Tree  *foldertree.Model
	Files *filelist.Model
	Form  *metaform.Model

	Popups  *popupctl.Manager
	Loads   *Loader
	Watcher FolderWatcher
	Disk    Disk
	Desktop Desktop
	Status  *Status

	Width  int
	Height int

	initCmd tea.Cmd
}

// New builds the model, restores the saved session when it belongs to the
// same root and focuses the folder tree.
func New(cfg *config.Config, stateMgr state.Interface, opts Options) (Model, error) {
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	var saved *state.NavigationState
	if stateMgr != nil {
		nav, err := stateMgr.GetNavigation()
		if err != nil {
			log.Error(err, "restore session")
		}
		saved = nav
	}

	root, err := startFolder(cfg, saved, opts.Root)
	if err != nil {
		return Model{}, err
	}
	src, err := navigator.NewFileSource(root, navigator.Options{
		ShowHidden:   cfg.ShowHidden,
		ShowAllFiles: cfg.ShowAllFiles,
	})
	if err != nil {
		return Model{}, err
	}

	icons.Init(cfg.Icons)

	disk := DefaultDisk()
	if opts.Disk != nil {
		disk = *opts.Disk
	}
	desktop := DefaultDesktop()
	if opts.Desktop != nil {
		desktop = *opts.Desktop
	}

	m := Model{
		Config:   cfg,
		StateMgr: stateMgr,
		Log:      log,
		Doc:      element.NewDocument(),
		Machine:  navstate.New(log),
		Repeat: keyrepeat.New(
			keyrepeat.WithDelay(cfg.RepeatDelay()),
			keyrepeat.WithInterval(cfg.RepeatInterval()),
			keyrepeat.WithEchoWindow(cfg.EchoWindow()),
			keyrepeat.WithHoldConfirmation(0),
			keyrepeat.WithClock(opts.Now),
		),
		Tree:    foldertree.New(src, log),
		Files:   filelist.New(log),
		Form:    metaform.New(),
		Popups:  popupctl.New(),
		Loads:   NewLoader(src, disk.ReadTags, cfg.LoadDebounce(), log),
		Watcher: opts.Watcher,
		Disk:    disk,
		Desktop: desktop,
		Status:  &Status{},
	}
	m.Ledger = focus.NewLedger(m.Doc, focus.WithPadding(cfg.Padding()))
	m.Router = router.New(m.Machine, nil, log)
	m.Nav = navctl.New(navctl.Deps{
		Doc:     m.Doc,
		Ledger:  m.Ledger,
		Machine: m.Machine,
		Router:  m.Router,
		Repeat:  m.Repeat,
		Lists:   listnav.NewNavigator(m.Ledger, m.Machine, m.Repeat),
		Tree:    m.Tree,
		Files:   m.Files,
		Form:    m.Form,
		Log:     log,
	})
	m.Files.SetNameSuggester(m.suggestName)
	m.Nav.Init(m.callbacks())
	m.Nav.RegisterRoutes()

	if err := m.Tree.Load(); err != nil {
		return Model{}, err
	}
	m.initCmd = m.restore(saved)
	return m, nil
}

// startFolder picks the folder to browse: an explicit root, then the saved
// session, then the configured folder, then the working directory.
func startFolder(cfg *config.Config, saved *state.NavigationState, explicit string) (string, error) {
	candidates := []string{explicit}
	if saved != nil {
		candidates = append(candidates, saved.StartFolder)
	}
	candidates = append(candidates, cfg.StartFolder)
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return filepath.Abs(dir)
		}
		if dir == explicit {
			return "", fmt.Errorf("not a folder: %s", dir)
		}
	}
	return os.Getwd()
}

// restore reopens the saved folder and file when the session belongs to the
// current root, then focuses the folder tree.
func (m *Model) restore(saved *state.NavigationState) tea.Cmd {
	var cmds []tea.Cmd
	if saved != nil && saved.StartFolder == m.Tree.Root() && saved.SelectedFolder != "" {
		if m.Tree.Reveal(saved.SelectedFolder) != nil {
			if saved.SelectedFile != "" {
				m.Loads.SelectAfterListing(saved.SelectedFolder, saved.SelectedFile)
			}
			cmds = append(cmds, m.Loads.FilesNow(saved.SelectedFolder))
		}
	}
	_, cmd := m.Nav.FocusPane(element.PaneFolders)
	return tea.Batch(append(cmds, cmd)...)
}

// callbacks connects the navigation engine to loading and persistence.
// The closures only touch pointer fields, so they stay valid for every
// copy of the model.
func (m Model) callbacks() navctl.Callbacks {
	return navctl.Callbacks{
		SelectTreeItem: func(*element.Element, bool) tea.Cmd {
			m.SaveNavigationState()
			return nil
		},
		LoadFiles: func(folderPath string) tea.Cmd {
			return m.Loads.ScheduleFiles(folderPath)
		},
		SelectFileItem: func(el *element.Element, _ bool) tea.Cmd {
			m.SaveNavigationState()
			e, ok := m.Files.Entry(el)
			if !ok || !tags.IsMusicFile(e.Path) {
				m.Loads.CancelTags()
				return nil
			}
			return m.Loads.ScheduleTags(e.Path)
		},
		LoadFile: func(path string, _ *element.Element) tea.Cmd {
			if !tags.IsMusicFile(path) {
				return nil
			}
			return m.Loads.TagsNow(path)
		},
		ShowHelp: func() tea.Cmd {
			return func() tea.Msg { return ShowHelpMsg{} }
		},
		CommitChange: m.writeChange,
		RenameFile:   m.renameFile,
	}
}

// suggestName builds a file name from the tags shown in the form. Only the
// file whose tags are loaded gets a suggestion.
func (m Model) suggestName(path string) string {
	if m.Form.Path() != path {
		return ""
	}
	return rename.FileName(m.Form.Tag(), rename.Config{
		Template:          m.Config.Rename.Template,
		AndToAmpersand:    m.Config.Rename.AndToAmpersand,
		RemoveFeat:        m.Config.Rename.RemoveFeat,
		EllipsisNormalize: m.Config.Rename.EllipsisNormalize,
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.initCmd}
	if m.Watcher != nil {
		cmds = append(cmds, m.Watcher.Wait())
	}
	return tea.Batch(cmds...)
}

// Close releases the watcher and flushes the session.
func (m Model) Close() {
	m.SaveNavigationState()
	if m.Watcher != nil {
		if err := m.Watcher.Close(); err != nil {
			m.Log.Error(err, "close watcher")
		}
	}
	if m.StateMgr != nil {
		if err := m.StateMgr.Close(); err != nil {
			m.Log.Error(err, "close state")
		}
	}
}
